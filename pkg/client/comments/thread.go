package comments

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"ascended/pkg/client"
	"ascended/pkg/client/notify"
	"ascended/pkg/client/querycache"
	"ascended/pkg/comment"
	"ascended/pkg/logger"
)

// Thread is the collapsible comment list under a post with its reply box.
type Thread struct {
	postId   string
	api      *client.Client
	cache    *querycache.Cache
	notifier notify.Notifier

	mu         sync.Mutex
	visible    bool
	draft      string
	submitting bool
}

func New(postId string, api *client.Client, cache *querycache.Cache, n notify.Notifier) *Thread {
	return &Thread{postId: postId, api: api, cache: cache, notifier: n}
}

func (th *Thread) Show() {
	th.setVisible(true)
}

func (th *Thread) Hide() {
	th.setVisible(false)
}

func (th *Thread) ToggleVisible() bool {
	th.mu.Lock()
	defer th.mu.Unlock()
	th.visible = !th.visible
	return th.visible
}

func (th *Thread) Visible() bool {
	th.mu.Lock()
	defer th.mu.Unlock()
	return th.visible
}

func (th *Thread) setVisible(v bool) {
	th.mu.Lock()
	th.visible = v
	th.mu.Unlock()
}

// Comments returns the thread in insertion order, or nil while it's hidden.
func (th *Thread) Comments(ctx context.Context) ([]*comment.Comment, error) {
	if !th.Visible() {
		return nil, nil
	}
	res, err := querycache.Fetch(ctx, th.cache, client.CommentsKey(th.postId), func(ctx context.Context) ([]*comment.Comment, error) {
		list := []*comment.Comment{}
		if err := th.api.Request(ctx, http.MethodGet, th.path(), nil, &list); err != nil {
			return nil, err
		}
		return list, nil
	})
	if err != nil {
		return nil, fmt.Errorf("comments: can't load thread of post %s: %w", th.postId, err)
	}
	return res, nil
}

func (th *Thread) SetDraft(s string) {
	th.mu.Lock()
	th.draft = s
	th.mu.Unlock()
}

func (th *Thread) Draft() string {
	th.mu.Lock()
	defer th.mu.Unlock()
	return th.draft
}

// Submit posts the draft. The draft is cleared only when the server accepts it.
func (th *Thread) Submit(ctx context.Context) (*comment.Comment, error) {
	th.mu.Lock()
	content, err := comment.Validate(th.draft)
	if err != nil {
		th.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", client.ErrValidation, err)
	}
	if th.submitting {
		th.mu.Unlock()
		return nil, client.ErrInFlight
	}
	if !th.api.Authenticated() {
		th.mu.Unlock()
		th.notifier.Notify(notify.Toast{
			Kind:        notify.Failure,
			Title:       "Sign in required",
			Description: "Log in to join the conversation.",
		})
		return nil, client.ErrAuthRequired
	}
	th.submitting = true
	th.mu.Unlock()

	created := new(comment.Comment)
	err = th.api.Request(ctx, http.MethodPost, th.path(), struct {
		Content string `json:"content"`
	}{content}, created)

	th.mu.Lock()
	th.submitting = false
	if err != nil {
		th.mu.Unlock()
		logger.Log(ctx).Warnf("comments: can't add comment to post %s: %v", th.postId, err)
		th.notifier.Notify(notify.Toast{Kind: notify.Failure, Title: "Comment failed", Description: client.UserMessage(err)})
		return nil, err
	}
	th.draft = ""
	th.mu.Unlock()

	th.cache.Invalidate(client.CommentsKey(th.postId))
	th.notifier.Notify(notify.Toast{Kind: notify.Success, Title: "Comment added"})
	return created, nil
}

func (th *Thread) path() string {
	return "/api/posts/" + url.PathEscape(th.postId) + "/comments"
}
