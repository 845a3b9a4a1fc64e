package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestContext(t *testing.T) (*gin.Context, *http.Request) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:54321"
	c.Request = req
	return c, req
}

func TestExtractClientIPPrefersForwardedFor(t *testing.T) {
	c, req := newTestContext(t)
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1, 10.0.0.2")
	req.Header.Set("X-Real-IP", "198.51.100.9")

	assert.Equal(t, "203.0.113.5", ExtractClientIP(c))
}

func TestExtractClientIPTrimsForwardedToken(t *testing.T) {
	c, req := newTestContext(t)
	req.Header.Set("X-Forwarded-For", "  203.0.113.5 , 10.0.0.1")

	assert.Equal(t, "203.0.113.5", ExtractClientIP(c))
}

func TestExtractClientIPFallsBackToRealIP(t *testing.T) {
	c, req := newTestContext(t)
	req.Header.Set("X-Real-IP", "198.51.100.9")

	assert.Equal(t, "198.51.100.9", ExtractClientIP(c))
}

func TestExtractClientIPFallsBackToRemoteAddr(t *testing.T) {
	c, _ := newTestContext(t)

	assert.Equal(t, "192.0.2.10", ExtractClientIP(c))
}

func TestClientIPMiddlewareStoresValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ClientIPMiddleware())

	var captured string
	router.GET("/", func(c *gin.Context) {
		captured = ClientIPFromContext(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.5")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "203.0.113.5", captured)
}

func TestClientIPFromContextWithoutMiddleware(t *testing.T) {
	c, _ := newTestContext(t)
	assert.Equal(t, "", ClientIPFromContext(c))
}
