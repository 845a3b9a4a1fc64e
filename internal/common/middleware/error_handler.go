package middleware

import (
	"github.com/architect/backoffice/internal/common/errors"
	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware catches panics and converts them to proper error responses
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				appErr := errors.Internal("internal server error", "")
				c.AbortWithStatusJSON(appErr.Status, appErr)
			}
		}()
		c.Next()
	}
}

// JSONErrorResponse wraps errors in consistent JSON format. AccountLocked is
// surfaced to the end user as the same generic refusal as InvalidCredentials
// so callers cannot probe lock state.
func JSONErrorResponse(c *gin.Context, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.Internal("internal server error", err.Error())
	}

	if appErr.Code == errors.CodeAccountLocked {
		appErr = errors.InvalidCredentials()
	}

	c.JSON(appErr.Status, appErr)
}
