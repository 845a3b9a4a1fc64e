package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/architect/backoffice/internal/accounts/handlers"
	"github.com/architect/backoffice/internal/accounts/models"
	"github.com/architect/backoffice/internal/accounts/repository"
	"github.com/architect/backoffice/internal/accounts/services"
	"github.com/architect/backoffice/internal/common/audit"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/common/middleware"
	"github.com/architect/backoffice/pkg/password"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) (*gin.Engine, *services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Session{}))

	auth := services.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		password.NewManager(),
		audit.SystemClock(),
		3, 15*time.Minute, 24*time.Hour,
	)

	_, err = auth.CreateUser(models.CreateUserRequest{
		Username: "mrios",
		Email:    "mrios@example.com",
		Password: "correct-horse-battery",
	}, uuid.Nil)
	require.NoError(t, err)

	handler := handlers.NewAuthHandler(auth)
	router := gin.New()
	router.Use(middleware.ClientIPMiddleware())
	router.POST("/login", handler.Login)
	router.POST("/logout", middleware.AuthRequired(auth), handler.Logout)
	router.GET("/me", middleware.AuthRequired(auth), handler.Me)
	return router, auth
}

func postLogin(t *testing.T, router *gin.Engine, identifier, pass string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"identifier": identifier,
		"password":   pass,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginReturnsSessionToken(t *testing.T) {
	router, _ := setupRouter(t)

	w := postLogin(t, router, "mrios", "correct-horse-battery")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "mrios", resp.User.Username)
	assert.Empty(t, resp.User.PasswordHash, "hash must never be serialized")
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	router, _ := setupRouter(t)

	w := postLogin(t, router, "mrios", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLockedAccountGetsGenericRefusal(t *testing.T) {
	router, _ := setupRouter(t)

	for i := 0; i < 3; i++ {
		postLogin(t, router, "mrios", "wrong")
	}

	// Correct password on a locked account: the response body must be
	// indistinguishable from a bad-credentials refusal
	w := postLogin(t, router, "mrios", "correct-horse-battery")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp errors.AppError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errors.CodeInvalidCredentials, resp.Code)
}

func TestMeRequiresValidToken(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	login := postLogin(t, router, "mrios", "correct-horse-battery")
	require.Equal(t, http.StatusOK, login.Code)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &resp))

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	router, _ := setupRouter(t)

	login := postLogin(t, router, "mrios", "correct-horse-battery")
	require.Equal(t, http.StatusOK, login.Code)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRecordsClientIPFromForwardedHeader(t *testing.T) {
	router, auth := setupRouter(t)

	body, err := json.Marshal(map[string]string{
		"identifier": "mrios",
		"password":   "correct-horse-battery",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	user, err := auth.GetUser(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.5", user.LastLoginIP)
}
