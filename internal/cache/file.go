package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/creatorstats/youtube-dashboard-go/internal/models"
	"github.com/creatorstats/youtube-dashboard-go/pkg/logger"
)

// FileStore keeps one JSON file per cache key under a base directory.
type FileStore struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewFileStore creates a file-backed Store rooted at dir. The directory is
// created on first write.
func NewFileStore(dir string, ttl time.Duration) *FileStore {
	return &FileStore{dir: dir, ttl: ttl, now: time.Now}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get reads and validates the entry at key. Any unusable entry is deleted
// before ErrMiss is returned, so the next pass starts clean.
func (s *FileStore) Get(ctx context.Context, key string) (*models.CacheEntry, error) {
	path := s.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			misses.Inc()
			return nil, ErrMiss
		}
		return nil, err
	}

	entry, rawFirst, err := decodeEntry(data)
	if err != nil || !validEntry(entry, rawFirst, s.ttl, s.now()) {
		logger.Log.Warn("removing stale or corrupt cache entry",
			zap.String("key", key),
			zap.Error(err),
		)
		_ = os.Remove(path)
		misses.Inc()
		return nil, ErrMiss
	}

	hits.Inc()
	return entry, nil
}

// Put writes the entry atomically: a temp file in the same directory is
// renamed over the target, so readers never see a partial write.
func (s *FileStore) Put(ctx context.Context, key string, entry *models.CacheEntry) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".tmp.*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path(key))
}

// InvalidateScope deletes every cache file belonging to a scope.
func (s *FileStore) InvalidateScope(ctx context.Context, scopeID string) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	prefix := "videos_" + scopeID + "_"
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err == nil {
			removed++
		}
	}

	return removed, nil
}

// Sweep removes cache files older than maxAge regardless of scope. File
// modification time stands in for the write time, matching what Put leaves
// behind.
func (s *FileStore) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	cutoff := s.now().Add(-maxAge)
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "videos_") || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err == nil {
				removed++
			}
		}
	}

	return removed, nil
}

// decodeEntry unmarshals a cache entry and captures the raw JSON keys of its
// first video for the structural schema probe.
func decodeEntry(data []byte) (*models.CacheEntry, map[string]any, error) {
	var entry models.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, nil, err
	}

	var probe struct {
		Videos []map[string]any `json:"videos"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nil, err
	}

	var rawFirst map[string]any
	if len(probe.Videos) > 0 {
		rawFirst = probe.Videos[0]
	}
	return &entry, rawFirst, nil
}
