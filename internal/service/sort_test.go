package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/creatorstats/youtube-dashboard-go/internal/models"
)

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input  string
		want   SortKey
		wantOK bool
	}{
		{input: "published", want: SortPublished, wantOK: true},
		{input: "views", want: SortViews, wantOK: true},
		{input: "likes", want: SortLikes, wantOK: true},
		{input: "length", want: SortLength, wantOK: true},
		{input: "watchTime", want: SortWatchTime, wantOK: true},
		{input: "watched", want: SortWatched, wantOK: true},
		{input: "subs", want: SortSubs, wantOK: true},
		{input: "subsGained", want: SortSubs, wantOK: true},
		{input: "title", want: SortTitle, wantOK: true},
		{input: "wat", wantOK: false},
		{input: "", wantOK: false},
		{input: "VIEWS", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseSortKey(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func ids(videos []models.EnrichedVideo) []string {
	out := make([]string, len(videos))
	for i, v := range videos {
		out[i] = v.VideoID
	}
	return out
}

func TestSortVideos(t *testing.T) {
	base := func() []models.EnrichedVideo {
		return []models.EnrichedVideo{
			{VideoID: "a", Title: "banana", Published: "2025-03-01", Views: 10, Likes: 5, DurationSeconds: 600, WatchTime: 200, Watched: 33.3, SubsGained: 2},
			{VideoID: "b", Title: "Apple", Published: "2025-01-15", Views: 50, Likes: 1, DurationSeconds: 120, WatchTime: 90, Watched: 75.0, SubsGained: -1},
			{VideoID: "c", Title: "cherry", Published: "2025-02-20", Views: 30, Likes: 9, DurationSeconds: 65, WatchTime: 10, Watched: 15.4, SubsGained: 8},
		}
	}

	tests := []struct {
		name string
		key  SortKey
		desc bool
		want []string
	}{
		{name: "published asc", key: SortPublished, want: []string{"b", "c", "a"}},
		{name: "published desc", key: SortPublished, desc: true, want: []string{"a", "c", "b"}},
		{name: "views desc", key: SortViews, desc: true, want: []string{"b", "c", "a"}},
		{name: "likes asc", key: SortLikes, want: []string{"b", "a", "c"}},
		{name: "length by seconds not string", key: SortLength, want: []string{"c", "b", "a"}},
		{name: "watch time asc", key: SortWatchTime, want: []string{"c", "b", "a"}},
		{name: "watched desc", key: SortWatched, desc: true, want: []string{"b", "a", "c"}},
		{name: "subs asc includes negative", key: SortSubs, want: []string{"b", "a", "c"}},
		{name: "title case insensitive", key: SortTitle, want: []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videos := base()
			SortVideos(videos, tt.key, tt.desc)
			assert.Equal(t, tt.want, ids(videos))
		})
	}
}

func TestSortVideos_Stable(t *testing.T) {
	videos := []models.EnrichedVideo{
		{VideoID: "first", Views: 10},
		{VideoID: "mid", Views: 5},
		{VideoID: "second", Views: 10},
	}

	SortVideos(videos, SortViews, true)

	// Equal view counts keep their original relative order.
	assert.Equal(t, []string{"first", "second", "mid"}, ids(videos))
}

func TestSortVideos_UnknownKeyIsNoop(t *testing.T) {
	videos := []models.EnrichedVideo{
		{VideoID: "z", Views: 1},
		{VideoID: "a", Views: 99},
	}

	SortVideos(videos, SortKey("bogus"), true)

	assert.Equal(t, []string{"z", "a"}, ids(videos))
}
