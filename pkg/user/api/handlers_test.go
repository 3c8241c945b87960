package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ascended/pkg/common"
	"ascended/pkg/logger"
	"ascended/pkg/middleware"
	"ascended/pkg/sessions"
	"ascended/pkg/user"
)

var (
	userId         = "1"
	username       = "pike"
	salt           = "12345678"
	password       = "sdfsdfsdf"
	hashedPassword = common.HashPass("sdfsdfsdf", salt)
	jwtToken       = "header.payload.signature"
)

func authReq(un, pw string) *http.Request {
	body := strings.NewReader(`{"username": "` + un + `", "password": "` + pw + `"}`)
	return httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
}

func TestLogIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	existingUser := user.User{Id: userId, Username: username, Password: hashedPassword, Role: user.RoleUser, Energy: 40}
	mockRepo := NewMockUserRepo(ctrl)
	mockSm := NewMockSessionManager(ctrl)
	service := NewUserHandler(mockRepo, mockSm, 100)

	logMiddleware := middleware.NewLoggingMiddleware(logger.Run("fatal"))
	handler := logMiddleware.AccessLog(http.HandlerFunc(service.LogIn))

	t.Run("login is OK", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsernameAndPass(gomock.Any(), username, password).Return(&existingUser, nil)
		mockSm.EXPECT().CleanupUserSessions(userId).Return(nil)
		mockSm.EXPECT().CreateToken(&existingUser).Return(jwtToken, nil)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authReq(username, password))
		resp := w.Result()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got struct {
			Token string    `json:"token"`
			User  user.User `json:"user"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, jwtToken, got.Token)
		assert.Equal(t, 40, got.User.Energy)
	})

	t.Run("user not found", func(t *testing.T) {
		badUsername, badPassword := "notexists", "nevermind"
		mockRepo.EXPECT().GetByUsernameAndPass(gomock.Any(), badUsername, badPassword).
			Return(nil, fmt.Errorf("user not found"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authReq(badUsername, badPassword))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("sessions cleanup failed", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsernameAndPass(gomock.Any(), username, password).Return(&existingUser, nil)
		mockSm.EXPECT().CleanupUserSessions(userId).Return(fmt.Errorf("redis is down"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authReq(username, password))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("bad body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"login": 1}`))
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockUserRepo(ctrl)
	mockSm := NewMockSessionManager(ctrl)
	service := NewUserHandler(mockRepo, mockSm, 100)

	t.Run("registers with starting energy", func(t *testing.T) {
		mockRepo.EXPECT().UserExists(gomock.Any(), username).Return(false)
		mockRepo.EXPECT().Add(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) (string, error) {
				assert.Equal(t, username, u.Username)
				assert.Equal(t, user.RoleUser, u.Role)
				assert.Equal(t, 100, u.Energy)
				assert.Len(t, u.Password, 8+32)
				return userId, nil
			})
		mockSm.EXPECT().CreateToken(gomock.Any()).Return(jwtToken, nil)

		w := httptest.NewRecorder()
		service.Register(w, authReq(username, password))
		assert.Equal(t, http.StatusCreated, w.Code)
		body, _ := io.ReadAll(w.Body)
		assert.Contains(t, string(body), jwtToken)
	})

	t.Run("user already exists", func(t *testing.T) {
		mockRepo.EXPECT().UserExists(gomock.Any(), username).Return(true)
		w := httptest.NewRecorder()
		service.Register(w, authReq(username, password))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already exists")
	})

	t.Run("empty credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		service.Register(w, authReq("  ", ""))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("repo failure", func(t *testing.T) {
		mockRepo.EXPECT().UserExists(gomock.Any(), username).Return(false)
		mockRepo.EXPECT().Add(gomock.Any(), gomock.Any()).Return("", fmt.Errorf("db is gone"))
		w := httptest.NewRecorder()
		service.Register(w, authReq(username, password))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockUserRepo(ctrl)
	service := NewUserHandler(mockRepo, NewMockSessionManager(ctrl), 100)

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		service.Me(w, httptest.NewRequest(http.MethodGet, "/api/auth/user", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("returns fresh balance", func(t *testing.T) {
		mockRepo.EXPECT().GetById(gomock.Any(), userId).
			Return(&user.User{Id: userId, Username: username, Role: user.RoleUser, Energy: 17}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
		req = req.WithContext(sessions.WithAuthUser(req.Context(), &user.User{Id: userId}))
		w := httptest.NewRecorder()
		service.Me(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var got user.User
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, 17, got.Energy)
		assert.Equal(t, username, got.Username)
	})
}
