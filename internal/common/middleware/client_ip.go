package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const clientIPKey = "client_ip"

// ClientIPMiddleware resolves the caller's address, considering proxy
// headers, and stores it on the request context for downstream handlers.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(clientIPKey, ExtractClientIP(c))
		c.Next()
	}
}

// ClientIPFromContext returns the IP resolved by ClientIPMiddleware, or
// empty when the middleware did not run.
func ClientIPFromContext(c *gin.Context) string {
	if ip, ok := c.Get(clientIPKey); ok {
		if s, ok := ip.(string); ok {
			return s
		}
	}
	return ""
}

// ExtractClientIP reads X-Forwarded-For first (first comma-separated token),
// falls back to X-Real-IP, then to the direct connection address.
func ExtractClientIP(c *gin.Context) string {
	if forwarded := c.Request.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	if realIP := c.Request.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
