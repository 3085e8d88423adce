package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"

	"github.com/creatorstats/youtube-dashboard-go/internal/auth"
	"github.com/creatorstats/youtube-dashboard-go/internal/models"
	"github.com/creatorstats/youtube-dashboard-go/pkg/logger"
)

// channelCacheTTL bounds how often the channel summary call is repeated.
// Channel identity barely changes; five minutes spares the quota without
// the dashboard header going visibly stale.
const channelCacheTTL = 5 * time.Minute

// ChannelReader fetches the authorized channel's identity summary.
type ChannelReader interface {
	ChannelSummary(ctx context.Context) (*models.ChannelSummary, error)
}

// ChannelHandler serves the channel/profile endpoint behind a short-TTL
// in-memory cache.
type ChannelHandler struct {
	reader ChannelReader
	cache  *ttlcache.Cache[string, *models.ChannelSummary]
}

// NewChannelHandler creates a new ChannelHandler instance.
func NewChannelHandler(reader ChannelReader) *ChannelHandler {
	cache := ttlcache.New[string, *models.ChannelSummary](
		ttlcache.WithTTL[string, *models.ChannelSummary](channelCacheTTL),
		ttlcache.WithDisableTouchOnHit[string, *models.ChannelSummary](),
	)
	go cache.Start() // expired-item eviction loop

	return &ChannelHandler{reader: reader, cache: cache}
}

// GetChannel handles GET /api/channel.
func (h *ChannelHandler) GetChannel(c *gin.Context) {
	if item := h.cache.Get("channel"); item != nil {
		c.JSON(http.StatusOK, item.Value())
		return
	}

	summary, err := h.reader.ChannelSummary(c.Request.Context())
	if err != nil {
		if errors.Is(err, auth.ErrNoCredentials) {
			c.JSON(http.StatusOK, gin.H{"authenticated": false})
			return
		}
		logger.Log.Error("failed to fetch channel summary", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "YouTube is unavailable right now. Please try again later.",
		})
		return
	}

	h.cache.Set("channel", summary, ttlcache.DefaultTTL)
	c.JSON(http.StatusOK, summary)
}
