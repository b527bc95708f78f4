package middleware

import (
	"net/http/httptest"
	"testing"

	"comoencasa/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(remoteAddr string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestGetClientIPPrefersForwardedForChainHead(t *testing.T) {
	config.AppConfig.TrustProxyHeaders = true
	c := testContext("10.0.0.1:4321", map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.1",
	})
	assert.Equal(t, "203.0.113.7", getClientIP(c))
}

func TestGetClientIPFallsBackToRealIP(t *testing.T) {
	config.AppConfig.TrustProxyHeaders = true
	c := testContext("10.0.0.1:4321", map[string]string{
		"X-Real-IP": "203.0.113.8",
	})
	assert.Equal(t, "203.0.113.8", getClientIP(c))
}

func TestGetClientIPUsesSocketAddressWithoutHeaders(t *testing.T) {
	config.AppConfig.TrustProxyHeaders = true
	c := testContext("198.51.100.9:4321", nil)
	assert.Equal(t, "198.51.100.9", getClientIP(c))
}

func TestGetClientIPIgnoresHeadersWithoutTrustedProxy(t *testing.T) {
	config.AppConfig.TrustProxyHeaders = false
	defer func() { config.AppConfig.TrustProxyHeaders = true }()

	c := testContext("198.51.100.9:4321", map[string]string{
		"X-Forwarded-For": "203.0.113.7",
		"X-Real-IP":       "203.0.113.8",
	})
	assert.Equal(t, "198.51.100.9", getClientIP(c))
}
