package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/creatorstats/youtube-dashboard-go/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	// Initialize logger to prevent nil pointer errors
	_ = logger.Init("error", "")
}

func newAuthRouter(keys []string) *gin.Engine {
	router := gin.New()
	router.Use(NewAPIKeyAuth(keys).Middleware())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		headers    map[string]string
		wantStatus int
	}{
		{
			name:       "no keys configured passes through",
			keys:       nil,
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid X-API-Key",
			keys:       []string{"secret-1"},
			headers:    map[string]string{"X-API-Key": "secret-1"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid bearer token",
			keys:       []string{"secret-1"},
			headers:    map[string]string{"Authorization": "Bearer secret-1"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong key rejected",
			keys:       []string{"secret-1"},
			headers:    map[string]string{"X-API-Key": "wrong"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing key rejected",
			keys:       []string{"secret-1"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "second configured key accepted",
			keys:       []string{"secret-1", "secret-2"},
			headers:    map[string]string{"X-API-Key": "secret-2"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty configured keys are ignored",
			keys:       []string{""},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthRouter(tt.keys)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/protected", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
