package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/creatorstats/youtube-dashboard-go/pkg/logger"
)

const (
	headerAPIKey = "X-API-Key"
	headerAuth   = "Authorization"
	bearerPrefix = "Bearer "
)

// APIKeyAuth provides optional API key authentication for the dashboard
// API. With no keys configured it is a pass-through; the reference
// deployment sits behind the operator's own network.
type APIKeyAuth struct {
	apiKeys []string
}

// NewAPIKeyAuth creates the middleware from the configured key list.
func NewAPIKeyAuth(apiKeys []string) *APIKeyAuth {
	keys := make([]string, 0, len(apiKeys))
	for _, key := range apiKeys {
		if key != "" {
			keys = append(keys, key)
		}
	}
	return &APIKeyAuth{apiKeys: keys}
}

// Middleware validates the API key from the X-API-Key header or an
// Authorization: Bearer header, in that order.
func (a *APIKeyAuth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(a.apiKeys) == 0 {
			c.Next()
			return
		}

		if !a.isValidAPIKey(a.extractAPIKey(c)) {
			logger.Log.Warn("unauthorized request - invalid or missing API key",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("remote_addr", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			return
		}

		c.Next()
	}
}

func (a *APIKeyAuth) extractAPIKey(c *gin.Context) string {
	if apiKey := c.GetHeader(headerAPIKey); apiKey != "" {
		return apiKey
	}
	if auth := c.GetHeader(headerAuth); strings.HasPrefix(auth, bearerPrefix) {
		return strings.TrimPrefix(auth, bearerPrefix)
	}
	return ""
}

func (a *APIKeyAuth) isValidAPIKey(key string) bool {
	if key == "" {
		return false
	}
	for _, valid := range a.apiKeys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(valid)) == 1 {
			return true
		}
	}
	return false
}
