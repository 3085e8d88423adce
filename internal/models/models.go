// Package models contains the data models and DTOs for the creator
// analytics dashboard.
package models

import "time"

// Visibility represents the privacy status of a video as reported by the
// YouTube Data API.
type Visibility string

// Visibility constants define the possible privacy states of a video.
const (
	VisibilityPublic   Visibility = "public"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPrivate  Visibility = "private"
	VisibilityUnknown  Visibility = "unknown"
)

// ParseVisibility maps a raw privacyStatus string onto a Visibility,
// defaulting to VisibilityUnknown for anything unrecognized.
func ParseVisibility(s string) Visibility {
	switch Visibility(s) {
	case VisibilityPublic, VisibilityUnlisted, VisibilityPrivate:
		return Visibility(s)
	default:
		return VisibilityUnknown
	}
}

// ContentItem is the metadata for one uploaded video as returned by the
// listing source. Immutable for the lifetime of one aggregation pass.
type ContentItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Thumbnail   string     `json:"thumbnail"`
	PublishedAt string     `json:"published_at"` // RFC3339, lexicographically sortable
	DurationISO string     `json:"duration_iso"` // ISO-8601 duration, e.g. PT4M13S
	Visibility  Visibility `json:"visibility"`
}

// EngagementMetrics holds the per-video analytics row. Absence of a row for
// a video means "no metrics available" and callers default to the zero value.
type EngagementMetrics struct {
	VideoID           string  `json:"video_id"`
	Views             int64   `json:"views"`
	Likes             int64   `json:"likes"`
	AvgViewDuration   float64 `json:"avg_view_duration"`   // seconds
	AvgViewPercentage float64 `json:"avg_view_percentage"` // 0-100
	SubscribersGained int64   `json:"subscribers_gained"`  // may be negative
}

// EnrichedVideo is the join of a public ContentItem with its
// EngagementMetrics plus the derived display fields. It is the unit stored
// in cache and returned to clients; the JSON field names are the dashboard
// contract.
type EnrichedVideo struct {
	VideoID         string  `json:"video_id"`
	Title           string  `json:"title"`
	Thumbnail       string  `json:"thumbnail"`
	Published       string  `json:"published"`    // YYYY-MM-DD
	VideoLength     string  `json:"video_length"` // M:SS display string
	DurationSeconds float64 `json:"length_seconds"`
	Views           int64   `json:"views"`
	Likes           int64   `json:"likes"`
	WatchTime       float64 `json:"watch_time"` // average view duration, seconds
	Watched         float64 `json:"watched"`    // percent of the video watched on average
	SubsGained      int64   `json:"subs_gained"`
}

// CacheEntry is one cached result set for a scope and time bucket. Every
// video in an entry was produced by the same aggregation pass.
type CacheEntry struct {
	Key            string          `json:"key"`
	Videos         []EnrichedVideo `json:"videos"`
	LastUpdated    string          `json:"last_updated"` // result-set date, YYYY-MM-DD
	CacheTime      time.Time       `json:"cache_time"`   // write time, drives expiry
	TotalAvailable int64           `json:"total_available"`
}

// ChannelSummary is the identity summary returned by the channel endpoint.
type ChannelSummary struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Thumbnail       string `json:"thumbnail"`
	SubscriberCount uint64 `json:"subscriberCount"`
	VideoCount      uint64 `json:"videoCount"`
	ViewCount       uint64 `json:"viewCount"`
}

// Pagination describes the slice of the full result set returned to the
// client.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	PerPage     int  `json:"per_page"`
	TotalVideos int  `json:"total_videos"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
}

// VideoListResponse is the JSON contract of the video listing endpoint.
type VideoListResponse struct {
	Authenticated        bool            `json:"authenticated"`
	Videos               []EnrichedVideo `json:"videos"`
	LastUpdated          string          `json:"last_updated,omitempty"`
	TotalVideosFetched   int             `json:"total_videos_fetched"`
	TotalVideosAvailable int64           `json:"total_videos_available"`
	Cached               bool            `json:"cached,omitempty"`
	Demo                 bool            `json:"demo,omitempty"`
	Pagination           *Pagination     `json:"pagination,omitempty"`
	Error                string          `json:"error,omitempty"`
}
