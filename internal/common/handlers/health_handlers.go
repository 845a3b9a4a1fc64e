package handlers

import (
	"net/http"

	"github.com/architect/backoffice/internal/common/health"
	"github.com/gin-gonic/gin"
)

// HealthHandler serves health and readiness endpoints
type HealthHandler struct {
	checker *health.Checker
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health returns the full health report
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.checker.Check()
	code := http.StatusOK
	if status.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

// Liveness reports that the process is running
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness reports whether the service can take traffic
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.checker.Ready() {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
}
