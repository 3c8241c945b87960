package middleware

import (
	"context"
	"net/http"
	"time"

	. "ascended/pkg/common"
	"ascended/pkg/logger"
	"ascended/pkg/sessions"
	"ascended/pkg/user"
)

type (
	IUserRepo interface {
		GetById(context.Context, string) (*user.User, error)
	}
	ISessionManager interface {
		UserFromToken(string) (*user.User, error)
	}
	Auth struct {
		UserRepo       IUserRepo
		SessionManager ISessionManager
	}
)

func NewAuthMiddleware(sm ISessionManager, ur IUserRepo) *Auth {
	return &Auth{
		UserRepo:       ur,
		SessionManager: sm,
	}
}

// Middleware resolves the bearer token into a user loaded from the repo,
// so role and energy balance are always fresh. Requests without a valid
// token pass through anonymously.
func (auth Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		userFromToken, err := auth.SessionManager.UserFromToken(authHeader)
		if err != nil {
			logger.Log(r.Context()).Warnf("can't get user from token: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		repoCtx, repoCtxCancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer repoCtxCancel()
		u, err := auth.UserRepo.GetById(repoCtx, userFromToken.Id)
		if err != nil {
			logger.Log(r.Context()).Errorf("auth: can't get the user form repo: %v", err)
			WriteMsg(w, "user not found", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(sessions.WithAuthUser(r.Context(), u)))
	})
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := sessions.GetAuthUser(r.Context()); err != nil {
			WriteMsg(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// RequireModerator lets through moderators and admins only.
func RequireModerator(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := sessions.GetAuthUser(r.Context())
		if err != nil {
			WriteMsg(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if !u.CanModerate() {
			logger.Log(r.Context()).Warnf("user %s tried to reach the moderation queue", u.Id)
			WriteMsg(w, "moderator access required", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
