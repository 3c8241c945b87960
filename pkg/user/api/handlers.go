package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"ascended/pkg/common"
	"ascended/pkg/logger"
	"ascended/pkg/sessions"
	"ascended/pkg/user"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=api UserRepo,SessionManager

type (
	UserRepo interface {
		UserExists(context.Context, string) bool
		GetByUsernameAndPass(context.Context, string, string) (*user.User, error)
		GetById(context.Context, string) (*user.User, error)
		Add(context.Context, *user.User) (string, error)
	}

	SessionManager interface {
		CreateToken(*user.User) (string, error)
		CleanupUserSessions(userId string) error
	}

	UserHandler struct {
		Repo           UserRepo
		SessionManager SessionManager
		// Energy granted to every freshly registered user.
		StartingEnergy int
	}

	HttpUser struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
)

func NewUserHandler(r UserRepo, sm SessionManager, startingEnergy int) *UserHandler {
	return &UserHandler{
		Repo:           r,
		SessionManager: sm,
		StartingEnergy: startingEnergy,
	}
}

func (uh UserHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	httpUser := new(HttpUser)
	err := common.ParseReqBody(r.Body, httpUser)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't parse request body as user: %v", err)
		common.WriteMsg(w, "bad request format", http.StatusBadRequest)
		return
	}

	u, err := uh.Repo.GetByUsernameAndPass(r.Context(), httpUser.Username, httpUser.Password)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't get the user by username `%s` and password: %v",
			httpUser.Username, err)
		common.WriteMsg(w, "user not found", http.StatusNotFound)
		return
	}

	// Remove expired user session if there are any
	if err := uh.SessionManager.CleanupUserSessions(u.Id); err != nil {
		logger.Log(r.Context()).Errorf("user/handlers: can't cleanup sessions for user `%s`, %v", httpUser.Username, err)
		common.WriteMsg(w, "failed managing user sessions", http.StatusInternalServerError)
		return
	}

	uh.sendToken(r.Context(), w, u, http.StatusOK)
}

func (uh UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	httpUser := new(HttpUser)
	err := common.ParseReqBody(r.Body, httpUser)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't parse request body as user: %v", err)
		common.WriteMsg(w, "bad request format", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(httpUser.Username) == "" || httpUser.Password == "" {
		common.WriteMsg(w, "username and password are required", http.StatusBadRequest)
		return
	}

	// Check if user already exists
	if uh.Repo.UserExists(r.Context(), httpUser.Username) {
		msg := fmt.Sprintf(`user "%s" already exists`, httpUser.Username)
		logger.Log(r.Context()).Warn(msg)
		common.WriteMsg(w, msg, http.StatusConflict)
		return
	}

	salt := common.RandStringRunes(8)
	u := &user.User{
		Username: httpUser.Username,
		Password: common.HashPass(httpUser.Password, salt),
		Role:     user.RoleUser,
		Energy:   uh.StartingEnergy,
	}
	id, err := uh.Repo.Add(r.Context(), u)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't add user `%s`: %v", u.Username, err)
		common.WriteMsg(w, "can't add user", http.StatusInternalServerError)
		return
	}
	u.Id = id

	uh.sendToken(r.Context(), w, u, http.StatusCreated)
}

// Me returns the authenticated user with the current energy balance.
func (uh UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	authUser, err := sessions.GetAuthUser(r.Context())
	if err != nil {
		common.WriteMsg(w, "authentication required", http.StatusUnauthorized)
		return
	}

	u, err := uh.Repo.GetById(r.Context(), authUser.Id)
	if err != nil {
		logger.Log(r.Context()).Errorf("can't get user %s: %v", authUser.Id, err)
		common.WriteMsg(w, "user not found", http.StatusNotFound)
		return
	}
	common.WriteRespJSON(w, u)
}

func (uh *UserHandler) sendToken(ctx context.Context, w http.ResponseWriter, u *user.User, code int) {
	token, err := uh.SessionManager.CreateToken(u)
	if err != nil {
		logger.Log(ctx).Errorf("can't create JWT token from user: %v", err)
		common.WriteMsg(w, "user authentication failed", http.StatusInternalServerError)
		return
	}

	tk := struct {
		Token string     `json:"token"`
		User  *user.User `json:"user"`
	}{token, u}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	common.WriteRespJSON(w, tk)
}
