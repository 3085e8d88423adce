package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("vid%08d", i) // 11 chars, like real video ids
	}
	return ids
}

func TestTruncateForFilter(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		maxLen    int
		maxVideos int
		wantCount int
	}{
		{name: "small set untouched", count: 10, maxLen: 1500, maxVideos: 100, wantCount: 10},
		{name: "large set capped at max videos", count: 500, maxLen: 1500, maxVideos: 100, wantCount: 100},
		{name: "exactly at the cap", count: 100, maxLen: 5000, maxVideos: 100, wantCount: 100},
		{name: "over length but under video cap stays", count: 50, maxLen: 100, maxVideos: 100, wantCount: 50},
		{name: "empty", count: 0, maxLen: 1500, maxVideos: 100, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := makeIDs(tt.count)
			got := TruncateForFilter(ids, tt.maxLen, tt.maxVideos)
			require.Len(t, got, tt.wantCount)
			// Truncation keeps a prefix, never reorders.
			for i, id := range got {
				assert.Equal(t, ids[i], id)
			}
		})
	}
}

func TestMapRows(t *testing.T) {
	rows := [][]interface{}{
		{"vidA", float64(120), float64(9), 45.5, 61.2, float64(4)},
		{"vidB", float64(0), float64(0), 0.0, 0.0, float64(-2)},
		{"", float64(1), float64(1), 1.0, 1.0, float64(1)},        // no id, dropped
		{"short", float64(1)},                                     // malformed row, dropped
		{12345, float64(1), float64(1), 1.0, 1.0, float64(1)},     // non-string id, dropped
	}

	got := mapRows(rows)
	require.Len(t, got, 2)

	a := got["vidA"]
	assert.Equal(t, int64(120), a.Views)
	assert.Equal(t, int64(9), a.Likes)
	assert.InDelta(t, 45.5, a.AvgViewDuration, 1e-9)
	assert.InDelta(t, 61.2, a.AvgViewPercentage, 1e-9)
	assert.Equal(t, int64(4), a.SubscribersGained)

	b := got["vidB"]
	assert.Equal(t, int64(-2), b.SubscribersGained)
}

func TestMapRows_Empty(t *testing.T) {
	assert.Empty(t, mapRows(nil))
	assert.Empty(t, mapRows([][]interface{}{}))
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(nil, Config{}, nil)
	assert.Equal(t, 1500, c.cfg.MaxFilterLength)
	assert.Equal(t, 100, c.cfg.MaxFilterVideos)
	assert.Equal(t, "2025-01-01", c.cfg.StartDate)
	assert.Equal(t, "channel==MINE", c.ids())

	c = NewClient(nil, Config{ChannelID: "UC123"}, nil)
	assert.Equal(t, "channel==UC123", c.ids())
}
