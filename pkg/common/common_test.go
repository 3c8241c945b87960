package common

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMsg(t *testing.T) {
	w := httptest.NewRecorder()
	WriteMsg(w, "post not found", http.StatusNotFound)

	resp := w.Result()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"message":"post not found"}`, w.Body.String())
}

func TestHashPass(t *testing.T) {
	salt := "12345678"
	hashed := HashPass("sdfsdfsdf", salt)

	assert.Equal(t, []byte(salt), hashed[:8])
	assert.Len(t, hashed, 8+32)
	assert.True(t, bytes.Equal(hashed, HashPass("sdfsdfsdf", salt)))
	assert.False(t, bytes.Equal(hashed, HashPass("other", salt)))
}

func TestParseReqBody(t *testing.T) {
	t.Run("known fields", func(t *testing.T) {
		v := struct {
			Content string `json:"content"`
		}{}
		require.NoError(t, ParseReqBody(strings.NewReader(`{"content":"om"}`), &v))
		assert.Equal(t, "om", v.Content)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		v := struct {
			Content string `json:"content"`
		}{}
		err := ParseReqBody(strings.NewReader(`{"content":"om","score":5}`), &v)
		assert.ErrorContains(t, err, "can't decode request body")
	})
}

func TestRandStringRunes(t *testing.T) {
	assert.Len(t, RandStringRunes(12), 12)
	assert.NotEqual(t, NewID(), NewID())
}
