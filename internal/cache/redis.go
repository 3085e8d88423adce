package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/creatorstats/youtube-dashboard-go/internal/models"
	"github.com/creatorstats/youtube-dashboard-go/pkg/logger"
)

// redisKeyPrefix namespaces dashboard entries inside a shared Redis.
const redisKeyPrefix = "dashboard:"

// RedisStore implements Store on a Redis instance. Entries are written with
// the sweep age as their Redis TTL, so the long-horizon sweep happens
// server-side; Sweep is therefore a no-op beyond reporting.
type RedisStore struct {
	client   *redis.Client
	ttl      time.Duration
	sweepAge time.Duration
	now      func() time.Time
}

// NewRedisStore connects to the Redis at url and returns a Store backed by
// it.
func NewRedisStore(url string, ttl, sweepAge time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisStore{
		client:   redis.NewClient(opts),
		ttl:      ttl,
		sweepAge: sweepAge,
		now:      time.Now,
	}, nil
}

// Ping verifies connectivity; called once at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get reads and validates the entry at key, deleting it when unusable.
func (s *RedisStore) Get(ctx context.Context, key string) (*models.CacheEntry, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		misses.Inc()
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	entry, rawFirst, derr := decodeEntry(data)
	if derr != nil || !validEntry(entry, rawFirst, s.ttl, s.now()) {
		logger.Log.Warn("removing stale or corrupt cache entry",
			zap.String("key", key),
			zap.Error(derr),
		)
		_ = s.client.Del(ctx, redisKeyPrefix+key).Err()
		misses.Inc()
		return nil, ErrMiss
	}

	hits.Inc()
	return entry, nil
}

// Put stores the entry as JSON with the sweep age as expiry. SET is atomic,
// satisfying the no-partial-write contract.
func (s *RedisStore) Put(ctx context.Context, key string, entry *models.CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKeyPrefix+key, data, s.sweepAge).Err()
}

// InvalidateScope deletes every key belonging to a scope.
func (s *RedisStore) InvalidateScope(ctx context.Context, scopeID string) (int, error) {
	pattern := redisKeyPrefix + "videos_" + scopeID + "_*"

	removed := 0
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err == nil {
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}

	return removed, nil
}

// Sweep is handled by Redis key expiry; nothing to do here.
func (s *RedisStore) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	return 0, nil
}
