package post

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gomock "github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ascended/pkg/comment"
	"ascended/pkg/engagement"
	"ascended/pkg/sessions"
	"ascended/pkg/user"
)

var (
	author   = &user.User{Id: "7", Username: "pike", Role: user.RoleUser}
	stranger = &user.User{Id: "8", Username: "sage", Role: user.RoleUser}
	fixedNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
)

type handlerDeps struct {
	repo    *MockIPostRepo
	counter *MockICounter
	remover *MockIPostRemover
	h       *PostHandler
}

func newHandler(t *testing.T) handlerDeps {
	ctrl := gomock.NewController(t)
	d := handlerDeps{
		repo:    NewMockIPostRepo(ctrl),
		counter: NewMockICounter(ctrl),
		remover: NewMockIPostRemover(ctrl),
	}
	d.h = NewPostHandler(d.repo, d.counter, d.remover)
	d.h.now = func() time.Time { return fixedNow }
	return d
}

func req(method, target, body string, vars map[string]string, u *user.User) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if u != nil {
		r = r.WithContext(sessions.WithAuthUser(r.Context(), u))
	}
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	return r
}

func TestHandlerList(t *testing.T) {
	d := newHandler(t)

	t.Run("fills counters and frequency", func(t *testing.T) {
		posts := []*Post{
			{Id: "1", Chakra: Heart, Comments: []*comment.Comment{{Id: "c1"}}},
			{Id: "2", Chakra: Heart},
		}
		d.repo.EXPECT().GetAll(gomock.Any(), Filter{Chakra: Heart}).Return(posts, nil)
		d.counter.EXPECT().Counts(gomock.Any(), []string{"1", "2"}).Return(map[string]engagement.Counters{
			"1": {Upvote: 5, Downvote: 7, Like: 1, Energy: 30},
		}, nil)

		w := httptest.NewRecorder()
		d.h.List(w, req(http.MethodGet, "/api/posts?chakra=heart", "", nil, nil))
		require.Equal(t, http.StatusOK, w.Code)

		var got []*Post
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		require.Len(t, got, 2)
		assert.Equal(t, -2, got[0].Frequency)
		assert.Equal(t, 30, got[0].Engagements.Energy)
		assert.Equal(t, 1, got[0].CommentCount)
		assert.Equal(t, engagement.Counters{}, got[1].Engagements)
	})

	t.Run("all chakras", func(t *testing.T) {
		d.repo.EXPECT().GetAll(gomock.Any(), Filter{}).Return([]*Post{}, nil)
		d.counter.EXPECT().Counts(gomock.Any(), []string{}).Return(map[string]engagement.Counters{}, nil)

		w := httptest.NewRecorder()
		d.h.List(w, req(http.MethodGet, "/api/posts?chakra=all", "", nil, nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("unknown chakra", func(t *testing.T) {
		w := httptest.NewRecorder()
		d.h.List(w, req(http.MethodGet, "/api/posts?chakra=spleen", "", nil, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("repo error", func(t *testing.T) {
		d.repo.EXPECT().GetAll(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("mongo down"))
		w := httptest.NewRecorder()
		d.h.List(w, req(http.MethodGet, "/api/posts", "", nil, nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandlerGet(t *testing.T) {
	d := newHandler(t)

	d.repo.EXPECT().GetById(gomock.Any(), "1").Return(&Post{Id: "1"}, nil)
	d.counter.EXPECT().Counts(gomock.Any(), []string{"1"}).
		Return(map[string]engagement.Counters{"1": {Upvote: 2}}, nil)
	w := httptest.NewRecorder()
	d.h.Get(w, req(http.MethodGet, "/api/posts/1", "", map[string]string{"post_id": "1"}, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"frequency":2`)

	d.repo.EXPECT().GetById(gomock.Any(), "2").Return(nil, ErrNotFound)
	w = httptest.NewRecorder()
	d.h.Get(w, req(http.MethodGet, "/api/posts/2", "", map[string]string{"post_id": "2"}, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerAdd(t *testing.T) {
	d := newHandler(t)

	t.Run("created", func(t *testing.T) {
		d.repo.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *Post) (string, error) {
			assert.Equal(t, "open your heart", p.Content)
			assert.Equal(t, Heart, p.Chakra)
			assert.Equal(t, &user.Author{Id: "7", Username: "pike"}, p.Author)
			assert.Equal(t, fixedNow, p.CreatedAt)
			assert.NotEmpty(t, p.Id)
			return p.Id, nil
		})

		w := httptest.NewRecorder()
		d.h.Add(w, req(http.MethodPost, "/api/posts", `{"content": " open your heart ", "chakra": "heart"}`, nil, author))
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"media":[]`)
	})

	cases := []struct {
		name string
		body string
		u    *user.User
		code int
	}{
		{"anonymous", `{"content": "x", "chakra": "heart"}`, nil, http.StatusUnauthorized},
		{"blank content", `{"content": "  ", "chakra": "heart"}`, author, http.StatusBadRequest},
		{"bad chakra", `{"content": "x", "chakra": "elbow"}`, author, http.StatusBadRequest},
		{"too much media", `{"content": "x", "chakra": "root", "media": ["a","b","c","d","e"]}`, author, http.StatusBadRequest},
		{"unknown field", `{"content": "x", "chakra": "root", "votes": 3}`, author, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			d.h.Add(w, req(http.MethodPost, "/api/posts", tc.body, nil, tc.u))
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestHandlerDelete(t *testing.T) {
	d := newHandler(t)
	vars := map[string]string{"post_id": "1"}
	owned := &Post{Id: "1", Author: author.AsAuthor()}

	t.Run("stranger is forbidden", func(t *testing.T) {
		d.repo.EXPECT().GetById(gomock.Any(), "1").Return(owned, nil)
		w := httptest.NewRecorder()
		d.h.Delete(w, req(http.MethodDelete, "/api/posts/1", "", vars, stranger))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("author removes", func(t *testing.T) {
		d.repo.EXPECT().GetById(gomock.Any(), "1").Return(owned, nil)
		d.remover.EXPECT().RemovePost(gomock.Any(), "1").Return(nil)
		w := httptest.NewRecorder()
		d.h.Delete(w, req(http.MethodDelete, "/api/posts/1", "", vars, author))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHandlerComments(t *testing.T) {
	d := newHandler(t)
	vars := map[string]string{"post_id": "1"}

	t.Run("list", func(t *testing.T) {
		d.repo.EXPECT().Comments(gomock.Any(), "1").Return([]*comment.Comment{{Id: "c1"}, {Id: "c2"}}, nil)
		w := httptest.NewRecorder()
		d.h.ListComments(w, req(http.MethodGet, "/api/posts/1/comments", "", vars, nil))
		require.Equal(t, http.StatusOK, w.Code)

		var got []comment.Comment
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, "c1", got[0].Id)
		assert.Equal(t, "c2", got[1].Id)
	})

	t.Run("list of missing post", func(t *testing.T) {
		d.repo.EXPECT().Comments(gomock.Any(), "1").Return(nil, ErrNotFound)
		w := httptest.NewRecorder()
		d.h.ListComments(w, req(http.MethodGet, "/api/posts/1/comments", "", vars, nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("add", func(t *testing.T) {
		d.repo.EXPECT().AddComment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *comment.Comment) error {
			assert.Equal(t, "1", c.PostId)
			assert.Equal(t, "beautiful", c.Content)
			assert.Equal(t, "pike", c.Author.Username)
			return nil
		})
		w := httptest.NewRecorder()
		d.h.AddComment(w, req(http.MethodPost, "/api/posts/1/comments", `{"content": "beautiful\n"}`, vars, author))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("add rejects blank", func(t *testing.T) {
		w := httptest.NewRecorder()
		d.h.AddComment(w, req(http.MethodPost, "/api/posts/1/comments", `{"content": "   "}`, vars, author))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message": "comment can't be empty"}`, w.Body.String())
	})

	t.Run("add rejects too long", func(t *testing.T) {
		body := `{"content": "` + strings.Repeat("a", comment.MaxLength+1) + `"}`
		w := httptest.NewRecorder()
		d.h.AddComment(w, req(http.MethodPost, "/api/posts/1/comments", body, vars, author))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("add needs auth", func(t *testing.T) {
		w := httptest.NewRecorder()
		d.h.AddComment(w, req(http.MethodPost, "/api/posts/1/comments", `{"content": "hi"}`, vars, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("add to missing post", func(t *testing.T) {
		d.repo.EXPECT().AddComment(gomock.Any(), gomock.Any()).Return(ErrNotFound)
		w := httptest.NewRecorder()
		d.h.AddComment(w, req(http.MethodPost, "/api/posts/1/comments", `{"content": "hi"}`, vars, author))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

type fakeDeleter struct{ err error }

func (f fakeDeleter) Delete(context.Context, string) error { return f.err }

type fakePurger struct{ purged []string }

func (f *fakePurger) PurgePost(_ context.Context, postId string) error {
	f.purged = append(f.purged, postId)
	return nil
}

func TestRemover(t *testing.T) {
	t.Run("already gone post is still purged", func(t *testing.T) {
		purger := &fakePurger{}
		rm := NewRemover(fakeDeleter{err: ErrNotFound}, purger)
		assert.NoError(t, rm.RemovePost(context.Background(), "1"))
		assert.Equal(t, []string{"1"}, purger.purged)
	})

	t.Run("mongo failure stops removal", func(t *testing.T) {
		purger := &fakePurger{}
		rm := NewRemover(fakeDeleter{err: fmt.Errorf("timeout")}, purger)
		assert.Error(t, rm.RemovePost(context.Background(), "1"))
		assert.Empty(t, purger.purged)
	})
}
