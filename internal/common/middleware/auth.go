package middleware

import (
	"strings"

	"github.com/architect/backoffice/internal/common/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userIDKey = "user_id"

// SessionValidator resolves an opaque session token to a user id
type SessionValidator interface {
	ValidateToken(token string) (uuid.UUID, error)
}

// AuthRequired checks for a valid session token in the Authorization header
// (Bearer scheme) or the session_token cookie.
func AuthRequired(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			appErr := errors.Unauthorized("missing or invalid authentication")
			c.AbortWithStatusJSON(appErr.Status, appErr)
			return
		}

		userID, err := sessions.ValidateToken(token)
		if err != nil {
			JSONErrorResponse(c, err)
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// ActorFromContext returns the authenticated user id set by AuthRequired
func ActorFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// TokenFromRequest extracts the session token from the Authorization header
// (Bearer scheme) or the session_token cookie.
func TokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return header
	}
	if cookie, err := c.Cookie("session_token"); err == nil {
		return cookie
	}
	return ""
}
