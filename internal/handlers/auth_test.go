package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/comfortzone/comfortzone-api/internal/auth"
	"github.com/comfortzone/comfortzone-api/internal/database"
	"github.com/comfortzone/comfortzone-api/internal/dto"
	"github.com/comfortzone/comfortzone-api/internal/middleware"
	"github.com/comfortzone/comfortzone-api/internal/models"
	"github.com/comfortzone/comfortzone-api/internal/repository"
	"github.com/comfortzone/comfortzone-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// captureSender records sent emails instead of calling Brevo.
type captureSender struct {
	fail bool
	sent []string
}

func (s *captureSender) SendEmail(ctx context.Context, toEmail, subject, html string) error {
	if s.fail {
		return errors.New("smtp relay down")
	}
	s.sent = append(s.sent, toEmail)
	return nil
}

type authTestEnv struct {
	db      *gorm.DB
	router  *gin.Engine
	sender  *captureSender
	service *services.AuthService
	tokens  *auth.Manager
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err)

	database.SetDB(db)

	sender := &captureSender{}
	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, sender, "http://localhost:3000")
	tokens := auth.NewManager("test-secret", time.Hour)
	handler := NewAuthHandler(authService, tokens)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/register", handler.Register)
	api.POST("/login", handler.Login)
	api.POST("/verify-email", handler.VerifyEmail)
	api.POST("/resend-verification", handler.ResendVerification)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(tokens))
	protected.GET("/me", handler.Me)
	protected.PATCH("/user/:userId", handler.UpdateBio)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:      db,
		router:  r,
		sender:  sender,
		service: authService,
		tokens:  tokens,
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_RegisterVerifyLoginFlow(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/register", map[string]string{
		"email":    "a@x.com",
		"username": "alice",
		"password": "pw123456",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, env.sender.sent, 1)
	require.Equal(t, "a@x.com", env.sender.sent[0])

	// Login before verification is refused.
	w = doJSON(t, env.router, http.MethodPost, "/api/login", map[string]string{
		"emailOrUsername": "alice",
		"password":        "pw123456",
	}, "")
	require.Equal(t, http.StatusForbidden, w.Code)

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "a@x.com").First(&user).Error)
	require.NotNil(t, user.VerificationToken)
	require.Len(t, *user.VerificationToken, 64)

	w = doJSON(t, env.router, http.MethodPost, "/api/verify-email", map[string]string{
		"token": *user.VerificationToken,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	// The token is single use.
	w = doJSON(t, env.router, http.MethodPost, "/api/verify-email", map[string]string{
		"token": *user.VerificationToken,
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/login", map[string]string{
		"emailOrUsername": "alice",
		"password":        "pw123456",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	require.Equal(t, "alice", login.Username)
	require.True(t, login.EmailVerified)

	w = doJSON(t, env.router, http.MethodGet, "/api/me", nil, login.Token)
	require.Equal(t, http.StatusOK, w.Code)

	var me dto.MeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, "a@x.com", me.Email)
}

func TestAuthHandler_LoginByEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	registerVerifiedUser(t, env, "b@x.com", "bob", "pw123456")

	w := doJSON(t, env.router, http.MethodPost, "/api/login", map[string]string{
		"emailOrUsername": "b@x.com",
		"password":        "pw123456",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_LoginErrors(t *testing.T) {
	env := setupAuthTestEnv(t)

	registerVerifiedUser(t, env, "c@x.com", "carol", "pw123456")

	w := doJSON(t, env.router, http.MethodPost, "/api/login", map[string]string{
		"emailOrUsername": "nobody",
		"password":        "pw123456",
	}, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/login", map[string]string{
		"emailOrUsername": "carol",
		"password":        "wrong-password",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RegisterConflicts(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/register", map[string]string{
		"email":    "d@x.com",
		"username": "dave",
		"password": "pw123456",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/register", map[string]string{
		"email":    "d@x.com",
		"username": "other",
		"password": "pw123456",
	}, "")
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/register", map[string]string{
		"email":    "other@x.com",
		"username": "dave",
		"password": "pw123456",
	}, "")
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/register", map[string]string{
		"email":    "short@x.com",
		"username": "shorty",
		"password": "short",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_RegisterSurvivesEmailSendFailure(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.sender.fail = true

	w := doJSON(t, env.router, http.MethodPost, "/api/register", map[string]string{
		"email":    "e@x.com",
		"username": "erin",
		"password": "pw123456",
	}, "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	// The account is committed even though the email never went out.
	var user models.User
	require.NoError(t, env.db.Where("email = ?", "e@x.com").First(&user).Error)
	require.False(t, user.EmailVerified)

	env.sender.fail = false
	w = doJSON(t, env.router, http.MethodPost, "/api/resend-verification", map[string]string{
		"email": "e@x.com",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, env.sender.sent, 1)
}

func TestAuthHandler_ResendVerificationDoesNotRevealAccounts(t *testing.T) {
	env := setupAuthTestEnv(t)

	registerVerifiedUser(t, env, "f@x.com", "fred", "pw123456")
	sentBefore := len(env.sender.sent)

	known := doJSON(t, env.router, http.MethodPost, "/api/resend-verification", map[string]string{
		"email": "f@x.com",
	}, "")
	unknown := doJSON(t, env.router, http.MethodPost, "/api/resend-verification", map[string]string{
		"email": "ghost@x.com",
	}, "")

	require.Equal(t, http.StatusOK, known.Code)
	require.Equal(t, http.StatusOK, unknown.Code)
	require.JSONEq(t, known.Body.String(), unknown.Body.String())

	// Verified accounts and unknown addresses alike trigger no send.
	require.Len(t, env.sender.sent, sentBefore)
}

func TestAuthHandler_UpdateBio(t *testing.T) {
	env := setupAuthTestEnv(t)

	user := registerVerifiedUser(t, env, "g@x.com", "gina", "pw123456")
	other := registerVerifiedUser(t, env, "h@x.com", "hank", "pw123456")

	token, err := env.tokens.Issue(user.ID, user.Email)
	require.NoError(t, err)

	w := doJSON(t, env.router, http.MethodPatch, "/api/user/"+itoa(user.ID), map[string]string{
		"bio": "out of my comfort zone",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var me dto.MeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.NotNil(t, me.Bio)
	require.Equal(t, "out of my comfort zone", *me.Bio)

	// Editing someone else's profile is refused.
	w = doJSON(t, env.router, http.MethodPatch, "/api/user/"+itoa(other.ID), map[string]string{
		"bio": "vandalism",
	}, token)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func registerVerifiedUser(t *testing.T, env authTestEnv, email, username, password string) *models.User {
	t.Helper()

	user, err := env.service.Register(context.Background(), services.RegisterInput{
		Email:    email,
		Username: username,
		Password: password,
	})
	require.NoError(t, err)
	require.NoError(t, env.service.VerifyEmail(*user.VerificationToken))

	user, err = env.service.GetUser(user.ID)
	require.NoError(t, err)
	return user
}
