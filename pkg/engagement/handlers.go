package engagement

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	. "ascended/pkg/common"
	"ascended/pkg/logger"
	"ascended/pkg/sessions"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=engagement IEngagementRepo,IPostChecker

type (
	IEngagementRepo interface {
		UserEngagements(ctx context.Context, userId, postId string) ([]Type, error)
		Add(context.Context, *Engagement) error
		Remove(ctx context.Context, userId, postId string, t Type) error
		Counts(ctx context.Context, postIds []string) (map[string]Counters, error)
	}

	IPostChecker interface {
		Exists(ctx context.Context, postId string) (bool, error)
	}

	EngagementHandler struct {
		Repo  IEngagementRepo
		Posts IPostChecker
	}

	engageRequest struct {
		Type         string `json:"type"`
		EnergyAmount int    `json:"energyAmount,omitempty"`
	}

	// State is what the engagement routes answer with: the caller's active
	// engagements and the post counters after the change.
	State struct {
		Engagements []Type   `json:"engagements"`
		Counters    Counters `json:"counters"`
		Frequency   int      `json:"frequency"`
	}
)

func NewEngagementHandler(repo IEngagementRepo, posts IPostChecker) *EngagementHandler {
	return &EngagementHandler{Repo: repo, Posts: posts}
}

func (eh *EngagementHandler) UserEngagements(w http.ResponseWriter, r *http.Request) {
	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		WriteMsg(w, "authentication required", http.StatusUnauthorized)
		return
	}
	postId := mux.Vars(r)["post_id"]

	types, err := eh.Repo.UserEngagements(r.Context(), authUser.Id, postId)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't load engagements of user %s: %v", authUser.Id, err)
		WriteMsg(w, "failed loading engagements", http.StatusInternalServerError)
		return
	}
	WriteRespJSON(w, struct {
		Engagements []Type `json:"engagements"`
	}{types})
}

func (eh *EngagementHandler) Add(w http.ResponseWriter, r *http.Request) {
	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		WriteMsg(w, "authentication required", http.StatusUnauthorized)
		return
	}
	postId := mux.Vars(r)["post_id"]

	req := new(engageRequest)
	if err := ParseReqBody(r.Body, req); err != nil {
		logger.Log(r.Context()).Errorf("can't parse engagement: %v", err)
		WriteMsg(w, "bad request format", http.StatusBadRequest)
		return
	}
	t, err := ParseType(req.Type)
	if err != nil {
		WriteMsg(w, err.Error(), http.StatusBadRequest)
		return
	}
	e := &Engagement{UserId: authUser.Id, PostId: postId, Type: t, Amount: req.EnergyAmount}
	if err := e.Validate(); err != nil {
		WriteMsg(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !eh.postExists(w, r, postId) {
		return
	}

	if err := eh.Repo.Add(r.Context(), e); err != nil {
		eh.writeRepoErr(w, r, err)
		return
	}
	logger.Log(r.Context()).Infof("user %s engaged post %s with %s", authUser.Id, postId, t)

	eh.writeState(w, r, authUser.Id, postId, http.StatusCreated)
}

func (eh *EngagementHandler) Remove(w http.ResponseWriter, r *http.Request) {
	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		WriteMsg(w, "authentication required", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	postId := vars["post_id"]

	t, err := ParseType(vars["type"])
	if err != nil {
		WriteMsg(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := eh.Repo.Remove(r.Context(), authUser.Id, postId, t); err != nil {
		eh.writeRepoErr(w, r, err)
		return
	}
	logger.Log(r.Context()).Infof("user %s removed %s from post %s", authUser.Id, t, postId)

	eh.writeState(w, r, authUser.Id, postId, http.StatusOK)
}

func (eh *EngagementHandler) postExists(w http.ResponseWriter, r *http.Request, postId string) bool {
	ok, err := eh.Posts.Exists(r.Context(), postId)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't check post %s: %v", postId, err)
		WriteMsg(w, "failed loading post", http.StatusInternalServerError)
		return false
	}
	if !ok {
		WriteMsg(w, "post not found", http.StatusNotFound)
		return false
	}
	return true
}

func (eh *EngagementHandler) writeRepoErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInsufficientEnergy):
		WriteMsg(w, "insufficient energy", http.StatusBadRequest)
	case errors.Is(err, ErrAlreadyEngaged):
		WriteMsg(w, "already engaged", http.StatusConflict)
	case errors.Is(err, ErrNotEngaged):
		WriteMsg(w, "engagement not found", http.StatusNotFound)
	default:
		logger.Log(r.Context()).Errorf("engagement/handlers: repo failed: %v", err)
		WriteMsg(w, "failed saving engagement", http.StatusInternalServerError)
	}
}

func (eh *EngagementHandler) writeState(w http.ResponseWriter, r *http.Request, userId, postId string, code int) {
	types, err := eh.Repo.UserEngagements(r.Context(), userId, postId)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't reload engagements: %v", err)
		WriteMsg(w, "failed loading engagements", http.StatusInternalServerError)
		return
	}
	counts, err := eh.Repo.Counts(r.Context(), []string{postId})
	if err != nil {
		logger.Log(r.Context()).Errorf("can't reload counters: %v", err)
		WriteMsg(w, "failed loading counters", http.StatusInternalServerError)
		return
	}

	c := counts[postId]
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	WriteRespJSON(w, State{Engagements: types, Counters: c, Frequency: c.Frequency()})
}
