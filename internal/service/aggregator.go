// Package service contains the aggregation pipeline that reconciles the
// listing and analytics sources into one cached, sortable record set.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/creatorstats/youtube-dashboard-go/internal/auth"
	"github.com/creatorstats/youtube-dashboard-go/internal/cache"
	"github.com/creatorstats/youtube-dashboard-go/internal/models"
	"github.com/creatorstats/youtube-dashboard-go/pkg/logger"
)

// Lister is the content listing collaborator (YouTube Data API in
// production, a fake in tests).
type Lister interface {
	ListMyVideos(ctx context.Context, maxResults int64) (ids []string, totalAvailable int64, err error)
	VideoDetails(ctx context.Context, ids []string) ([]models.ContentItem, error)
}

// MetricsSource is the analytics collaborator. FetchBatch is the only path
// a normal pass uses; FetchEach is the explicit per-item degraded mode.
type MetricsSource interface {
	FetchBatch(ctx context.Context, videoIDs []string) (map[string]models.EngagementMetrics, error)
	FetchEach(ctx context.Context, videoIDs []string) map[string]models.EngagementMetrics
}

// Options selects sorting and cache behavior for one request.
type Options struct {
	SortBy       string
	Descending   bool
	ForceRefresh bool
}

// Result is the outcome of one aggregation pass or cache read.
type Result struct {
	Videos         []models.EnrichedVideo
	LastUpdated    string
	Cached         bool
	Demo           bool
	TotalAvailable int64
}

// AggregatorConfig bounds one pass.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type AggregatorConfig struct {
	ScopeID         string
	MaxResults      int64
	SweepAge        time.Duration
	PadMinutes      bool
	PerItemFallback bool // use the degraded per-video mode instead of the batch
	DemoOnError     bool // serve canned records when the listing source fails
}

// Aggregator orchestrates list -> details -> metrics -> join -> sort ->
// cache. It is the only component here with side effects.
type Aggregator struct {
	lister  Lister
	metrics MetricsSource
	store   cache.Store
	cfg     AggregatorConfig
	now     func() time.Time
}

// NewAggregator wires an aggregator from its injected collaborators.
func NewAggregator(lister Lister, metrics MetricsSource, store cache.Store, cfg AggregatorConfig) *Aggregator {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 50
	}
	if cfg.SweepAge <= 0 {
		cfg.SweepAge = 24 * time.Hour
	}
	if cfg.ScopeID == "" {
		cfg.ScopeID = "mine"
	}
	return &Aggregator{lister: lister, metrics: metrics, store: store, cfg: cfg, now: time.Now}
}

// Videos returns the sorted record set for the current scope, from cache
// when a fresh entry exists and opts does not force a refresh.
func (a *Aggregator) Videos(ctx context.Context, opts Options) (*Result, error) {
	key := cache.Key(a.cfg.ScopeID, a.now())

	if !opts.ForceRefresh {
		if entry, err := a.store.Get(ctx, key); err == nil {
			videos := make([]models.EnrichedVideo, len(entry.Videos))
			copy(videos, entry.Videos)
			a.sort(videos, opts)
			return &Result{
				Videos:         videos,
				LastUpdated:    entry.LastUpdated,
				Cached:         true,
				TotalAvailable: entry.TotalAvailable,
			}, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			return nil, err
		}
	} else {
		// A forced refresh evicts the current bucket before refetching.
		if _, err := a.store.InvalidateScope(ctx, a.cfg.ScopeID); err != nil {
			logger.Log.Warn("failed to evict cache before forced refresh", zap.Error(err))
		}
	}

	return a.pass(ctx, key, opts)
}

// pass runs one full aggregation pass and caches the outcome.
func (a *Aggregator) pass(ctx context.Context, key string, opts Options) (*Result, error) {
	passID := uuid.NewString()
	log := logger.Log.With(zap.String("pass_id", passID), zap.String("cache_key", key))
	log.Info("starting aggregation pass")

	ids, totalAvailable, err := a.lister.ListMyVideos(ctx, a.cfg.MaxResults)
	if err != nil {
		if errors.Is(err, auth.ErrNoCredentials) {
			return nil, err
		}
		if a.cfg.DemoOnError {
			log.Warn("listing source unavailable, serving demo data", zap.Error(err))
			return a.demoResult(opts), nil
		}
		return nil, &UpstreamError{Op: "listing", Err: err}
	}

	items, err := a.lister.VideoDetails(ctx, ids)
	if err != nil {
		return nil, &UpstreamError{Op: "details", Err: err}
	}

	public := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if item.Visibility == models.VisibilityPublic {
			public = append(public, item)
		}
	}

	publicIDs := make([]string, len(public))
	for i, item := range public {
		publicIDs[i] = item.ID
	}

	var metrics map[string]models.EngagementMetrics
	if a.cfg.PerItemFallback {
		metrics = a.metrics.FetchEach(ctx, publicIDs)
	} else {
		metrics, err = a.metrics.FetchBatch(ctx, publicIDs)
		if err != nil {
			return nil, &UpstreamError{Op: "analytics", Err: errors.Join(ErrAnalyticsUnavailable, err)}
		}
	}

	videos := a.join(public, metrics, log)

	a.sort(videos, opts)

	// Metrics for today are provisionally incomplete upstream, so the
	// displayed freshness date is always one day behind the fetch.
	lastUpdated := a.now().AddDate(0, 0, -1).Format("2006-01-02")

	entry := &models.CacheEntry{
		Key:            key,
		Videos:         videos,
		LastUpdated:    lastUpdated,
		CacheTime:      a.now(),
		TotalAvailable: totalAvailable,
	}
	if err := a.store.Put(ctx, key, entry); err != nil {
		// A failed cache write degrades the next request, not this one.
		log.Error("failed to write cache entry", zap.Error(err))
	}

	if n, err := a.store.Sweep(ctx, a.cfg.SweepAge); err != nil {
		log.Warn("cache sweep failed", zap.Error(err))
	} else if n > 0 {
		log.Info("swept old cache entries", zap.Int("removed", n))
	}

	log.Info("aggregation pass complete",
		zap.Int("listed", len(ids)),
		zap.Int("public", len(public)),
		zap.Int("joined", len(videos)),
	)

	return &Result{
		Videos:         videos,
		LastUpdated:    lastUpdated,
		TotalAvailable: totalAvailable,
	}, nil
}

// join merges public items with their metrics, defaulting missing metrics
// to zero values. Items with malformed durations are skipped.
func (a *Aggregator) join(items []models.ContentItem, metrics map[string]models.EngagementMetrics, log *zap.Logger) []models.EnrichedVideo {
	videos := make([]models.EnrichedVideo, 0, len(items))
	for _, item := range items {
		seconds, err := ParseISODuration(item.DurationISO)
		if err != nil {
			log.Warn("skipping video with malformed duration",
				zap.String("video_id", item.ID),
				zap.String("duration", item.DurationISO),
			)
			continue
		}

		m := metrics[item.ID] // zero value when absent

		videos = append(videos, models.EnrichedVideo{
			VideoID:         item.ID,
			Title:           item.Title,
			Thumbnail:       item.Thumbnail,
			Published:       publishedDate(item.PublishedAt),
			VideoLength:     FormatSeconds(seconds, a.cfg.PadMinutes),
			DurationSeconds: seconds,
			Views:           m.Views,
			Likes:           m.Likes,
			WatchTime:       m.AvgViewDuration,
			Watched:         PercentWatched(m.AvgViewDuration, seconds),
			SubsGained:      m.SubscribersGained,
		})
	}
	return videos
}

func (a *Aggregator) sort(videos []models.EnrichedVideo, opts Options) {
	key, ok := ParseSortKey(opts.SortBy)
	if !ok {
		return
	}
	SortVideos(videos, key, opts.Descending)
}

func (a *Aggregator) demoResult(opts Options) *Result {
	videos := DemoVideos()
	a.sort(videos, opts)
	return &Result{
		Videos:         videos,
		LastUpdated:    a.now().AddDate(0, 0, -1).Format("2006-01-02"),
		Demo:           true,
		TotalAvailable: int64(len(videos)),
	}
}

// ClearCache removes every cache entry for the aggregator's scope.
func (a *Aggregator) ClearCache(ctx context.Context) (int, error) {
	return a.store.InvalidateScope(ctx, a.cfg.ScopeID)
}

// publishedDate reduces an RFC3339 timestamp to its YYYY-MM-DD date. The
// fixed-width prefix keeps lexicographic order chronological.
func publishedDate(rfc3339 string) string {
	if len(rfc3339) >= 10 {
		return rfc3339[:10]
	}
	return rfc3339
}
