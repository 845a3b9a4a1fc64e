package handlers

import (
	"net/http"

	"github.com/architect/backoffice/internal/accounts/models"
	"github.com/architect/backoffice/internal/accounts/services"
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/architect/backoffice/internal/common/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler serves login/logout and account endpoints
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login authenticates with username-or-email and password and returns a
// session token. Locked accounts get the same generic refusal as bad
// credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.InvalidCredentials())
		return
	}

	session, user, err := h.auth.Login(req.Identifier, req.Password, middleware.ClientIPFromContext(c))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	})
}

// Logout invalidates the caller's session token
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.TokenFromRequest(c)
	if token == "" {
		middleware.JSONErrorResponse(c, errors.BadRequest("missing session token"))
		return
	}

	if err := h.auth.Logout(token); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the authenticated account
func (h *AuthHandler) Me(c *gin.Context) {
	actorID, ok := middleware.ActorFromContext(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing or invalid authentication"))
		return
	}

	user, err := h.auth.GetUser(actorID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser registers a new account
func (h *AuthHandler) CreateUser(c *gin.Context) {
	actorID, _ := middleware.ActorFromContext(c)

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid user payload"))
		return
	}

	user, err := h.auth.CreateUser(req, actorID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ChangePassword resets the caller's own password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	actorID, ok := middleware.ActorFromContext(c)
	if !ok {
		middleware.JSONErrorResponse(c, errors.Unauthorized("missing or invalid authentication"))
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("invalid password payload"))
		return
	}

	if err := h.auth.ResetPassword(actorID, req.NewPassword); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
