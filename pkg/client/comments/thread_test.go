package comments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ascended/pkg/client"
	"ascended/pkg/client/notify"
	"ascended/pkg/client/querycache"
	"ascended/pkg/comment"
	"ascended/pkg/common"
	"ascended/pkg/user"
)

type fakeThread struct {
	mu       sync.Mutex
	gets     int
	posts    int
	comments []*comment.Comment
	failMsg  string
}

func (s *fakeThread) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.URL.Path != "/api/posts/p1/comments" {
		common.WriteMsg(w, "post not found", http.StatusNotFound)
		return
	}
	if r.Method == http.MethodGet {
		s.gets++
		common.WriteRespJSON(w, s.comments)
		return
	}

	s.posts++
	if s.failMsg != "" {
		common.WriteMsg(w, s.failMsg, http.StatusInternalServerError)
		return
	}
	req := struct {
		Content string `json:"content"`
	}{}
	_ = json.NewDecoder(r.Body).Decode(&req)
	c := &comment.Comment{
		Id:      common.NewID(),
		PostId:  "p1",
		Author:  &user.Author{Id: "1", Username: "luna"},
		Content: req.Content,
	}
	s.comments = append(s.comments, c)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	common.WriteRespJSON(w, c)
}

func (s *fakeThread) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets, s.posts
}

func newThread(t *testing.T, loggedIn bool) (*Thread, *fakeThread, *notify.Recorder) {
	srv := &fakeThread{comments: []*comment.Comment{
		{Id: "c1", PostId: "p1", Content: "first"},
		{Id: "c2", PostId: "p1", Content: "second"},
	}}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	api := client.New(client.Options{BaseURL: ts.URL, Timeout: 5 * time.Second})
	if loggedIn {
		api.SetToken("tkn")
	}
	cache, err := querycache.New(16, time.Minute)
	require.NoError(t, err)
	toasts := &notify.Recorder{}
	return New("p1", api, cache, toasts), srv, toasts
}

func TestCommentsOnlyWhileVisible(t *testing.T) {
	th, srv, _ := newThread(t, false)
	ctx := context.Background()

	list, err := th.Comments(ctx)
	require.NoError(t, err)
	assert.Nil(t, list)
	gets, _ := srv.counts()
	assert.Equal(t, 0, gets)

	assert.True(t, th.ToggleVisible())
	for i := 0; i < 2; i++ {
		list, err = th.Comments(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "first", list[0].Content)
		assert.Equal(t, "second", list[1].Content)
	}
	gets, _ = srv.counts()
	assert.Equal(t, 1, gets)

	th.Hide()
	assert.False(t, th.Visible())
}

func TestSubmitRejectsBlankDraft(t *testing.T) {
	th, srv, toasts := newThread(t, true)

	for _, draft := range []string{"", "   ", "\n\t", strings.Repeat("a", comment.MaxLength+1)} {
		th.SetDraft(draft)
		_, err := th.Submit(context.Background())
		assert.ErrorIs(t, err, client.ErrValidation)
		assert.Equal(t, draft, th.Draft())
	}
	_, posts := srv.counts()
	assert.Equal(t, 0, posts)
	assert.Empty(t, toasts.Toasts())
}

func TestSubmitRequiresAuth(t *testing.T) {
	th, srv, toasts := newThread(t, false)
	th.SetDraft("hello")

	_, err := th.Submit(context.Background())
	assert.ErrorIs(t, err, client.ErrAuthRequired)
	_, posts := srv.counts()
	assert.Equal(t, 0, posts)

	toast, ok := toasts.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Failure, toast.Kind)
	assert.Equal(t, "hello", th.Draft())
}

func TestSubmit(t *testing.T) {
	th, srv, toasts := newThread(t, true)
	ctx := context.Background()
	th.Show()

	list, err := th.Comments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	th.SetDraft("  with light  ")
	created, err := th.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "with light", created.Content)
	assert.Empty(t, th.Draft())

	toast, ok := toasts.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Success, toast.Kind)

	list, err = th.Comments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "with light", list[2].Content)
	gets, posts := srv.counts()
	assert.Equal(t, 2, gets)
	assert.Equal(t, 1, posts)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	th, srv, toasts := newThread(t, true)
	srv.mu.Lock()
	srv.failMsg = "failed saving comment"
	srv.mu.Unlock()

	th.SetDraft("stay")
	_, err := th.Submit(context.Background())
	var se *client.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "stay", th.Draft())

	toast, ok := toasts.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Failure, toast.Kind)
	assert.Equal(t, "failed saving comment", toast.Description)
}
