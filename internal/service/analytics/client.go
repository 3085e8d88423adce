// Package analytics wraps the YouTube Analytics API v2 reports endpoint to
// fetch per-video engagement metrics. The batched query is the only path an
// aggregation pass uses; the per-item loop is an explicit degraded mode that
// is never entered automatically.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtubeanalytics/v2"

	"github.com/creatorstats/youtube-dashboard-go/internal/auth"
	"github.com/creatorstats/youtube-dashboard-go/internal/models"
	"github.com/creatorstats/youtube-dashboard-go/internal/service/quota"
	"github.com/creatorstats/youtube-dashboard-go/pkg/logger"
)

const (
	reportMetrics = "views,likes,averageViewDuration,averageViewPercentage,subscribersGained"

	// Per-item retry policy for the degraded mode only.
	perItemAttempts = 3
	perItemDelay    = time.Second
)

// Config bounds the batched query.
type Config struct {
	ChannelID       string // empty means "channel==MINE"
	StartDate       string // YYYY-MM-DD
	MaxFilterLength int    // serialized filter cap in characters
	MaxFilterVideos int    // id cap applied when the filter would overflow
}

// Client issues reports.query calls against the Analytics API.
type Client struct {
	creds auth.CredentialProvider
	cfg   Config
	quota *quota.Ledger
	now   func() time.Time

	mu  sync.Mutex
	svc *youtubeanalytics.Service
}

// NewClient creates an Analytics API client on top of the credential
// provider.
func NewClient(creds auth.CredentialProvider, cfg Config, ledger *quota.Ledger) *Client {
	if cfg.MaxFilterLength <= 0 {
		cfg.MaxFilterLength = 1500
	}
	if cfg.MaxFilterVideos <= 0 {
		cfg.MaxFilterVideos = 100
	}
	if cfg.StartDate == "" {
		cfg.StartDate = "2025-01-01"
	}
	return &Client{creds: creds, cfg: cfg, quota: ledger, now: time.Now}
}

func (c *Client) service(ctx context.Context) (*youtubeanalytics.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.svc != nil {
		return c.svc, nil
	}

	httpClient, err := c.creds.Client(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := youtubeanalytics.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube Analytics service: %w", err)
	}

	c.svc = svc
	return svc, nil
}

func (c *Client) ids() string {
	if c.cfg.ChannelID != "" {
		return "channel==" + c.cfg.ChannelID
	}
	return "channel==MINE"
}

// FetchBatch fetches metrics for the given video ids with a single batched
// query. Ids absent from the result had no analytics row; callers default
// those to zero. A failure fails the whole fetch with no per-item fallback.
func (c *Client) FetchBatch(ctx context.Context, videoIDs []string) (map[string]models.EngagementMetrics, error) {
	if len(videoIDs) == 0 {
		return map[string]models.EngagementMetrics{}, nil
	}

	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	filtered := TruncateForFilter(videoIDs, c.cfg.MaxFilterLength, c.cfg.MaxFilterVideos)
	if len(filtered) < len(videoIDs) {
		logger.Log.Warn("analytics filter over length cap, truncating id set",
			zap.Int("requested", len(videoIDs)),
			zap.Int("kept", len(filtered)),
		)
	}

	response, err := c.query(ctx, svc, "video=="+strings.Join(filtered, ","))
	if err != nil {
		return nil, fmt.Errorf("analytics batch query failed: %w", err)
	}

	return mapRows(response.Rows), nil
}

// FetchEach is the explicit degraded mode: one query per video, issued
// sequentially to keep quota usage predictable. A failed video yields zero
// metrics after bounded retries; it never aborts the rest of the set.
func (c *Client) FetchEach(ctx context.Context, videoIDs []string) map[string]models.EngagementMetrics {
	out := make(map[string]models.EngagementMetrics, len(videoIDs))
	for _, id := range videoIDs {
		m, err := c.FetchOne(ctx, id)
		if err != nil {
			logger.Log.Warn("per-video analytics query failed, defaulting to zero metrics",
				zap.String("video_id", id),
				zap.Error(err),
			)
			m = models.EngagementMetrics{VideoID: id}
		}
		out[id] = m
	}
	return out
}

// FetchOne fetches metrics for a single video with a fixed retry budget.
func (c *Client) FetchOne(ctx context.Context, videoID string) (models.EngagementMetrics, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return models.EngagementMetrics{}, err
	}

	var lastErr error
	for attempt := 1; attempt <= perItemAttempts; attempt++ {
		response, err := c.query(ctx, svc, "video=="+videoID)
		if err == nil {
			rows := mapRows(response.Rows)
			if m, ok := rows[videoID]; ok {
				return m, nil
			}
			// No row means no analytics for this video, not a failure.
			return models.EngagementMetrics{VideoID: videoID}, nil
		}
		lastErr = err

		if attempt < perItemAttempts {
			select {
			case <-ctx.Done():
				return models.EngagementMetrics{}, ctx.Err()
			case <-time.After(perItemDelay):
			}
		}
	}

	return models.EngagementMetrics{}, lastErr
}

func (c *Client) query(ctx context.Context, svc *youtubeanalytics.Service, filters string) (*youtubeanalytics.QueryResponse, error) {
	call := svc.Reports.Query().
		Ids(c.ids()).
		StartDate(c.cfg.StartDate).
		EndDate(c.now().Format("2006-01-02")).
		Metrics(reportMetrics).
		Dimensions("video").
		Filters(filters).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, err
	}
	c.quota.Record(quota.CostAnalytics, "reports.query")
	return response, nil
}

// TruncateForFilter caps the id set at maxVideos when the serialized
// "video==a,b,c" filter would exceed maxLen. Dropped ids fall back to zero
// metrics downstream.
func TruncateForFilter(videoIDs []string, maxLen, maxVideos int) []string {
	length := len("video==") + len(videoIDs) - 1 // commas
	for _, id := range videoIDs {
		length += len(id)
	}
	if length <= maxLen {
		return videoIDs
	}
	if len(videoIDs) > maxVideos {
		return videoIDs[:maxVideos]
	}
	return videoIDs
}

// mapRows converts the positional report rows into keyed metrics. Row shape
// with dimensions=video: [videoID, views, likes, averageViewDuration,
// averageViewPercentage, subscribersGained].
func mapRows(rows [][]interface{}) map[string]models.EngagementMetrics {
	out := make(map[string]models.EngagementMetrics, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		id, ok := row[0].(string)
		if !ok || id == "" {
			continue
		}
		out[id] = models.EngagementMetrics{
			VideoID:           id,
			Views:             asInt64(row[1]),
			Likes:             asInt64(row[2]),
			AvgViewDuration:   asFloat(row[3]),
			AvgViewPercentage: asFloat(row[4]),
			SubscribersGained: asInt64(row[5]),
		}
	}
	return out
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func asInt64(v interface{}) int64 {
	return int64(asFloat(v))
}
