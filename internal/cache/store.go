// Package cache provides the time-bucketed result cache for aggregation
// passes. Entries are keyed by scope plus a coarse time bucket, validated
// structurally on read, and removed when stale or corrupt.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/creatorstats/youtube-dashboard-go/internal/models"
)

// ErrMiss is returned by Get when no usable entry exists at a key: absent,
// unparsable, structurally invalid, or past its TTL. Stale and corrupt
// entries are deleted as a side effect of the failed read.
var ErrMiss = errors.New("cache miss")

// Store is the durable key/value contract the aggregator writes through.
// Writes are atomic replacements; a reader never observes a partial entry.
type Store interface {
	Get(ctx context.Context, key string) (*models.CacheEntry, error)
	Put(ctx context.Context, key string, entry *models.CacheEntry) error
	// InvalidateScope removes every entry for a scope and reports how many
	// were deleted.
	InvalidateScope(ctx context.Context, scopeID string) (int, error)
	// Sweep removes entries older than maxAge across all scopes.
	Sweep(ctx context.Context, maxAge time.Duration) (int, error)
}

var (
	hits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_cache_hits_total",
		Help: "Number of cache reads that returned a fresh entry.",
	})
	misses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_cache_misses_total",
		Help: "Number of cache reads that missed, including self-healed entries.",
	})
)

// bucketNames label the four 6-hour quadrants of a day: 00-05, 06-11,
// 12-17, 18-23.
var bucketNames = [4]string{"night", "morning", "afternoon", "evening"}

// Key derives the cache key for a scope at a point in time. The coarse
// bucket width bounds how often a fresh fetch can be forced by the clock.
func Key(scopeID string, now time.Time) string {
	bucket := bucketNames[now.Hour()/6]
	return fmt.Sprintf("videos_%s_%s_%s", scopeID, now.Format("2006-01-02"), bucket)
}

// requiredFields is the structural schema probe: an entry whose first video
// is missing any of these JSON fields predates the current schema and is
// treated as corrupt.
var requiredFields = []string{"watched", "watch_time", "subs_gained", "published", "video_length"}

// validEntry reports whether a decoded entry is usable: parseable, complete
// against the current schema, and younger than ttl. rawFirst holds the JSON
// object keys of the entry's first video, when one exists.
func validEntry(entry *models.CacheEntry, rawFirst map[string]any, ttl time.Duration, now time.Time) bool {
	if entry == nil {
		return false
	}
	if now.Sub(entry.CacheTime) >= ttl {
		return false
	}
	if len(entry.Videos) > 0 {
		for _, f := range requiredFields {
			if _, ok := rawFirst[f]; !ok {
				return false
			}
		}
	}
	return true
}
