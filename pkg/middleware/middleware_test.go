package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"ascended/pkg/sessions"
	"ascended/pkg/user"
)

type stubSessions struct {
	u   *user.User
	err error
}

func (s stubSessions) UserFromToken(string) (*user.User, error) { return s.u, s.err }

type stubUsers map[string]*user.User

func (s stubUsers) GetById(_ context.Context, id string) (*user.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, errors.New("no rows")
}

// echoUser writes the id of the user found in the context, if any.
var echoUser = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	u, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		w.Write([]byte("anonymous"))
		return
	}
	w.Write([]byte(u.Id))
})

func TestAuthMiddleware(t *testing.T) {
	repo := stubUsers{"1": {Id: "1", Role: user.RoleUser, Energy: 30}}

	t.Run("no header passes anonymously", func(t *testing.T) {
		mw := NewAuthMiddleware(stubSessions{}, repo)
		w := httptest.NewRecorder()
		mw.Middleware(echoUser).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "anonymous", w.Body.String())
	})

	t.Run("bad token passes anonymously", func(t *testing.T) {
		mw := NewAuthMiddleware(stubSessions{err: errors.New("bad token")}, repo)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		mw.Middleware(echoUser).ServeHTTP(w, req)
		assert.Equal(t, "anonymous", w.Body.String())
	})

	t.Run("user loaded from repo", func(t *testing.T) {
		mw := NewAuthMiddleware(stubSessions{u: &user.User{Id: "1"}}, repo)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer ok")
		w := httptest.NewRecorder()
		mw.Middleware(echoUser).ServeHTTP(w, req)
		assert.Equal(t, "1", w.Body.String())
	})

	t.Run("deleted user is rejected", func(t *testing.T) {
		mw := NewAuthMiddleware(stubSessions{u: &user.User{Id: "2"}}, repo)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer ok")
		w := httptest.NewRecorder()
		mw.Middleware(echoUser).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }
	cases := []struct {
		name     string
		u        *user.User
		userCode int
		modsCode int
	}{
		{"anonymous", nil, http.StatusUnauthorized, http.StatusUnauthorized},
		{"regular user", &user.User{Id: "1", Role: user.RoleUser}, http.StatusNoContent, http.StatusForbidden},
		{"moderator", &user.User{Id: "2", Role: user.RoleModerator}, http.StatusNoContent, http.StatusNoContent},
		{"admin", &user.User{Id: "3", Role: user.RoleAdmin}, http.StatusNoContent, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.u != nil {
				req = req.WithContext(sessions.WithAuthUser(req.Context(), tc.u))
			}

			w := httptest.NewRecorder()
			RequireUser(ok)(w, req)
			assert.Equal(t, tc.userCode, w.Code)

			w = httptest.NewRecorder()
			RequireModerator(ok)(w, req)
			assert.Equal(t, tc.modsCode, w.Code)
		})
	}
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	lm := NewLoggingMiddleware(zap.New(core).Sugar())

	teapot := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := lm.SetupTracing(lm.SetupLogging(lm.AccessLog(teapot)))

	t.Run("generates request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts", nil))

		reqID := w.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, reqID)

		entries := logs.TakeAll()
		if assert.Len(t, entries, 1) {
			fields := entries[0].ContextMap()
			assert.Equal(t, reqID, fields["request_id"])
			assert.Equal(t, int64(http.StatusTeapot), fields["status"])
			assert.Equal(t, "/api/posts", fields["path"])
		}
	})

	t.Run("keeps incoming request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
		entries := logs.TakeAll()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, "abc", entries[0].ContextMap()["request_id"])
		}
	})
}
