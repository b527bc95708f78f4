package middleware

import (
	"net"
	"strings"

	"comoencasa/config"

	"github.com/gin-gonic/gin"
)

// getClientIP resolves the caller address used for rate limiting. Forwarding
// headers are only honored when the service is configured as sitting behind a
// trusted proxy; a directly exposed deployment would otherwise let clients
// spoof their way past per-IP limits.
func getClientIP(c *gin.Context) string {
	if config.AppConfig.TrustProxyHeaders {
		// X-Forwarded-For may carry a comma-separated chain; the first entry
		// is the originating client.
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
		if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
