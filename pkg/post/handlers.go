package post

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"ascended/pkg/comment"
	. "ascended/pkg/common"
	"ascended/pkg/engagement"
	"ascended/pkg/logger"
	"ascended/pkg/sessions"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=post IPostRepo,ICounter,IPostRemover

// Upper bound on attached media references per post.
const maxMedia = 4

type (
	IPostRepo interface {
		GetAll(context.Context, Filter) ([]*Post, error)
		GetById(context.Context, string) (*Post, error)
		Add(context.Context, *Post) (string, error)
		AddComment(context.Context, *comment.Comment) error
		Comments(context.Context, string) ([]*comment.Comment, error)
	}

	ICounter interface {
		Counts(ctx context.Context, postIds []string) (map[string]engagement.Counters, error)
	}

	IPostRemover interface {
		RemovePost(ctx context.Context, postId string) error
	}

	PostHandler struct {
		PostRepo IPostRepo
		Counter  ICounter
		Remover  IPostRemover
		now      func() time.Time
	}

	newPost struct {
		Content string   `json:"content"`
		Media   []string `json:"media"`
		Chakra  string   `json:"chakra"`
	}

	newComment struct {
		Content string `json:"content"`
	}
)

func NewPostHandler(postRepo IPostRepo, counter ICounter, remover IPostRemover) *PostHandler {
	return &PostHandler{
		PostRepo: postRepo,
		Counter:  counter,
		Remover:  remover,
		now:      time.Now,
	}
}

// List serves the feed, optionally narrowed by ?chakra= and ?author=.
func (ph *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	f := Filter{AuthorId: r.URL.Query().Get("author")}
	if c := r.URL.Query().Get("chakra"); c != "" && c != "all" {
		chakra, err := ParseChakra(c)
		if err != nil {
			WriteMsg(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.Chakra = chakra
	}

	posts, err := ph.PostRepo.GetAll(r.Context(), f)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't load posts from the repo: %v", err)
		WriteMsg(w, "failed loading posts", http.StatusInternalServerError)
		return
	}

	if err := ph.fillCounters(r.Context(), posts...); err != nil {
		logger.Log(r.Context()).Errorf("can't count engagements: %v", err)
		WriteMsg(w, "failed loading posts", http.StatusInternalServerError)
		return
	}

	WriteRespJSON(w, posts)
}

func (ph *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postId := mux.Vars(r)["post_id"]
	p, ok := ph.loadPost(w, r, postId)
	if !ok {
		return
	}

	if err := ph.fillCounters(r.Context(), p); err != nil {
		logger.Log(r.Context()).Errorf("can't count engagements of post %s: %v", postId, err)
		WriteMsg(w, "failed loading post", http.StatusInternalServerError)
		return
	}

	WriteRespJSON(w, p)
}

func (ph *PostHandler) Add(w http.ResponseWriter, r *http.Request) {
	author, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		WriteMsg(w, "authentication required", http.StatusUnauthorized)
		return
	}

	req := new(newPost)
	if err := ParseReqBody(r.Body, req); err != nil {
		logger.Log(r.Context()).Errorf("can't parse post from request body: %v", err)
		WriteMsg(w, "can't parse post", http.StatusBadRequest)
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		WriteMsg(w, "post content can't be empty", http.StatusBadRequest)
		return
	}
	chakra, err := ParseChakra(req.Chakra)
	if err != nil {
		WriteMsg(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Media) > maxMedia {
		WriteMsg(w, "too many media attachments", http.StatusBadRequest)
		return
	}
	media := req.Media
	if media == nil {
		media = []string{}
	}

	p := &Post{
		Id:        NewID(),
		Author:    author.AsAuthor(),
		Content:   content,
		Media:     media,
		Chakra:    chakra,
		CreatedAt: ph.now().UTC(),
		Comments:  []*comment.Comment{},
	}

	if _, err := ph.PostRepo.Add(r.Context(), p); err != nil {
		logger.Log(r.Context()).Errorf("can't add post to the repo: %v", err)
		WriteMsg(w, "failed adding post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	WriteRespJSON(w, p.WithCounters(engagement.Counters{}))
}

// Delete lets authors take down their own posts.
func (ph *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		WriteMsg(w, "authentication required", http.StatusUnauthorized)
		return
	}
	postId := mux.Vars(r)["post_id"]

	p, ok := ph.loadPost(w, r, postId)
	if !ok {
		return
	}
	if p.Author == nil || p.Author.Id != authUser.Id {
		logger.Log(r.Context()).Warnf("user %s tried to remove post %s", authUser.Id, postId)
		WriteMsg(w, "only the author can remove the post", http.StatusForbidden)
		return
	}

	if err := ph.Remover.RemovePost(r.Context(), postId); err != nil {
		logger.Log(r.Context()).Errorf("can't remove post: %v", err)
		WriteMsg(w, "removing post failed", http.StatusInternalServerError)
		return
	}

	WriteMsg(w, "success", http.StatusOK)
}

func (ph *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postId := mux.Vars(r)["post_id"]

	comments, err := ph.PostRepo.Comments(r.Context(), postId)
	if errors.Is(err, ErrNotFound) {
		WriteMsg(w, "post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Log(r.Context()).Errorf("can't load comments of post %s: %v", postId, err)
		WriteMsg(w, "failed loading comments", http.StatusInternalServerError)
		return
	}

	WriteRespJSON(w, comments)
}

func (ph *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	commenter, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		WriteMsg(w, "authentication required", http.StatusUnauthorized)
		return
	}
	postId := mux.Vars(r)["post_id"]

	req := new(newComment)
	if err := ParseReqBody(r.Body, req); err != nil {
		logger.Log(r.Context()).Errorf("can't get comment body: %v", err)
		WriteMsg(w, "failed parsing comment body", http.StatusBadRequest)
		return
	}
	content, err := comment.Validate(req.Content)
	if err != nil {
		WriteMsg(w, err.Error(), http.StatusBadRequest)
		return
	}

	c := &comment.Comment{
		Id:        NewID(),
		PostId:    postId,
		Author:    commenter.AsAuthor(),
		Content:   content,
		CreatedAt: ph.now().UTC(),
	}
	err = ph.PostRepo.AddComment(r.Context(), c)
	if errors.Is(err, ErrNotFound) {
		WriteMsg(w, "post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Log(r.Context()).Errorf("can't add comment to %s: %v", postId, err)
		WriteMsg(w, "failed adding comment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	WriteRespJSON(w, c)
}

func (ph *PostHandler) loadPost(w http.ResponseWriter, r *http.Request, postId string) (*Post, bool) {
	p, err := ph.PostRepo.GetById(r.Context(), postId)
	if errors.Is(err, ErrNotFound) {
		WriteMsg(w, "post not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		logger.Log(r.Context()).Errorf("can't get post with id %s: %v", postId, err)
		WriteMsg(w, "failed loading post", http.StatusInternalServerError)
		return nil, false
	}
	return p, true
}

func (ph *PostHandler) fillCounters(ctx context.Context, posts ...*Post) error {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.Id
	}
	counts, err := ph.Counter.Counts(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range posts {
		p.WithCounters(counts[p.Id])
	}
	return nil
}
