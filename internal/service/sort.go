package service

import (
	"sort"
	"strings"

	"github.com/creatorstats/youtube-dashboard-go/internal/models"
)

// SortKey identifies one of the sortable video record fields.
type SortKey string

// SortKey constants mirror the sort_by values accepted by the API.
const (
	SortPublished SortKey = "published"
	SortViews     SortKey = "views"
	SortLikes     SortKey = "likes"
	SortLength    SortKey = "length"
	SortWatchTime SortKey = "watchTime"
	SortWatched   SortKey = "watched"
	SortSubs      SortKey = "subs"
	SortTitle     SortKey = "title"
)

// ParseSortKey normalizes a sort_by query value. "subsGained" is accepted as
// an alias for "subs". Unrecognized values return ok=false; callers treat
// that as a no-op sort, not an error.
func ParseSortKey(s string) (SortKey, bool) {
	switch s {
	case "published", "views", "likes", "length", "watchTime", "watched", "subs", "title":
		return SortKey(s), true
	case "subsGained":
		return SortSubs, true
	default:
		return "", false
	}
}

// SortVideos orders videos in place by the given key and direction using a
// stable sort, so records comparing equal keep their relative order. An
// unrecognized key leaves the input order unchanged.
//
// Length and watch time compare by underlying seconds rather than by the
// formatted M:SS string, which would order "10:00" before "2:00".
func SortVideos(videos []models.EnrichedVideo, key SortKey, descending bool) {
	var less func(a, b models.EnrichedVideo) bool

	switch key {
	case SortPublished:
		// Fixed-width YYYY-MM-DD makes lexicographic order chronological.
		less = func(a, b models.EnrichedVideo) bool { return a.Published < b.Published }
	case SortViews:
		less = func(a, b models.EnrichedVideo) bool { return a.Views < b.Views }
	case SortLikes:
		less = func(a, b models.EnrichedVideo) bool { return a.Likes < b.Likes }
	case SortLength:
		less = func(a, b models.EnrichedVideo) bool { return a.DurationSeconds < b.DurationSeconds }
	case SortWatchTime:
		less = func(a, b models.EnrichedVideo) bool { return a.WatchTime < b.WatchTime }
	case SortWatched:
		less = func(a, b models.EnrichedVideo) bool { return a.Watched < b.Watched }
	case SortSubs:
		less = func(a, b models.EnrichedVideo) bool { return a.SubsGained < b.SubsGained }
	case SortTitle:
		less = func(a, b models.EnrichedVideo) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	default:
		return
	}

	sort.SliceStable(videos, func(i, j int) bool {
		if descending {
			return less(videos[j], videos[i])
		}
		return less(videos[i], videos[j])
	})
}
