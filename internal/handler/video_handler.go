// Package handler provides HTTP request handlers for the dashboard API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/creatorstats/youtube-dashboard-go/internal/auth"
	"github.com/creatorstats/youtube-dashboard-go/internal/models"
	"github.com/creatorstats/youtube-dashboard-go/internal/service"
	"github.com/creatorstats/youtube-dashboard-go/pkg/logger"
)

const (
	defaultPerPage = 10
	maxPerPage     = 50
)

// VideoAggregator is what the handler needs from the aggregation layer.
type VideoAggregator interface {
	Videos(ctx context.Context, opts service.Options) (*service.Result, error)
	ClearCache(ctx context.Context) (int, error)
}

// VideoHandler serves the video listing and cache-clear endpoints.
type VideoHandler struct {
	aggregator VideoAggregator
}

// NewVideoHandler creates a new VideoHandler instance.
func NewVideoHandler(aggregator VideoAggregator) *VideoHandler {
	return &VideoHandler{aggregator: aggregator}
}

// ListVideos handles GET /api/videos.
func (h *VideoHandler) ListVideos(c *gin.Context) {
	opts := service.Options{
		SortBy:       c.DefaultQuery("sort_by", "published"),
		Descending:   c.DefaultQuery("sort_direction", "desc") == "desc",
		ForceRefresh: c.Query("refresh") == "true",
	}

	result, err := h.aggregator.Videos(c.Request.Context(), opts)
	if err != nil {
		h.handleError(c, err)
		return
	}

	page := queryInt(c, "page", 1)
	perPage := queryInt(c, "per_page", defaultPerPage)
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	paged, pagination := paginate(result.Videos, page, perPage)

	c.JSON(http.StatusOK, models.VideoListResponse{
		Authenticated:        true,
		Videos:               paged,
		LastUpdated:          result.LastUpdated,
		TotalVideosFetched:   len(result.Videos),
		TotalVideosAvailable: result.TotalAvailable,
		Cached:               result.Cached,
		Demo:                 result.Demo,
		Pagination:           &pagination,
	})
}

// ClearCache handles POST /api/clear-cache (and GET, for the dashboard's
// refresh button). Returns the number of entries removed.
func (h *VideoHandler) ClearCache(c *gin.Context) {
	cleared, err := h.aggregator.ClearCache(c.Request.Context())
	if err != nil {
		logger.Log.Error("failed to clear cache",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cache",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cleared": cleared,
	})
}

func (h *VideoHandler) handleError(c *gin.Context, err error) {
	var upstream *service.UpstreamError

	switch {
	case errors.Is(err, auth.ErrNoCredentials):
		// Not an error from the front end's point of view: it shows the
		// sign-in prompt.
		c.JSON(http.StatusOK, models.VideoListResponse{
			Authenticated: false,
			Videos:        []models.EnrichedVideo{},
			Error:         "Authentication required. Please check your credentials.",
		})
	case errors.As(err, &upstream):
		logger.Log.Error("upstream call failed",
			zap.String("op", upstream.Op),
			zap.Error(upstream.Err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusServiceUnavailable, models.VideoListResponse{
			Authenticated: true,
			Videos:        []models.EnrichedVideo{},
			Error:         "YouTube is unavailable right now. Please try again later.",
		})
	default:
		logger.Log.Error("unexpected error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusInternalServerError, models.VideoListResponse{
			Authenticated: true,
			Videos:        []models.EnrichedVideo{},
			Error:         "An unexpected error occurred",
		})
	}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func paginate(videos []models.EnrichedVideo, page, perPage int) ([]models.EnrichedVideo, models.Pagination) {
	total := len(videos)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return videos[start:end], models.Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		TotalVideos: total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
