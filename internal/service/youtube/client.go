// Package youtube wraps the YouTube Data API v3 calls the dashboard needs:
// listing the authorized channel's uploads, fetching per-video metadata, and
// the channel identity summary.
package youtube

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/creatorstats/youtube-dashboard-go/internal/auth"
	"github.com/creatorstats/youtube-dashboard-go/internal/models"
	"github.com/creatorstats/youtube-dashboard-go/internal/service/quota"
)

// detailsBatchSize is the videos.list id cap per call.
const detailsBatchSize = 50

// Client lazily builds a Data API service from the credential provider and
// reuses it; the underlying token source refreshes itself.
type Client struct {
	creds auth.CredentialProvider
	quota *quota.Ledger

	mu  sync.Mutex
	svc *youtube.Service
}

// NewClient creates a Data API client on top of the credential provider.
func NewClient(creds auth.CredentialProvider, ledger *quota.Ledger) *Client {
	return &Client{creds: creds, quota: ledger}
}

func (c *Client) service(ctx context.Context) (*youtube.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.svc != nil {
		return c.svc, nil
	}

	httpClient, err := c.creds.Client(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	c.svc = svc
	return svc, nil
}

// ListMyVideos returns the ids of the channel's most recent uploads, newest
// first, capped at maxResults, plus the channel's total available count.
func (c *Client) ListMyVideos(ctx context.Context, maxResults int64) ([]string, int64, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, 0, err
	}

	call := svc.Search.List([]string{"snippet"}).
		ForMine(true).
		Type("video").
		Order("date").
		MaxResults(maxResults).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, 0, fmt.Errorf("search.list failed: %w", err)
	}
	c.quota.Record(quota.CostSearchList, "search.list")

	ids := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}

	var total int64
	if response.PageInfo != nil {
		total = response.PageInfo.TotalResults
	}

	return ids, total, nil
}

// VideoDetails fetches metadata including visibility for exactly the given
// ids, chunked at the API's 50-id cap. Order follows the API response, which
// preserves the requested id order.
func (c *Client) VideoDetails(ctx context.Context, ids []string) ([]models.ContentItem, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.ContentItem, 0, len(ids))
	for _, chunk := range chunkIDs(ids, detailsBatchSize) {
		call := svc.Videos.List([]string{"snippet", "contentDetails", "status"}).
			Id(chunk...).
			Context(ctx)

		response, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("videos.list failed: %w", err)
		}
		c.quota.Record(quota.CostVideosList, "videos.list")

		for _, v := range response.Items {
			items = append(items, mapVideo(v))
		}
	}

	return items, nil
}

// ChannelSummary returns the authorized channel's identity summary.
func (c *Client) ChannelSummary(ctx context.Context) (*models.ChannelSummary, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	call := svc.Channels.List([]string{"snippet", "statistics"}).
		Mine(true).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("channels.list failed: %w", err)
	}
	c.quota.Record(quota.CostVideosList, "channels.list")

	if len(response.Items) == 0 {
		return nil, fmt.Errorf("no channel found for authorized user")
	}

	ch := response.Items[0]
	summary := &models.ChannelSummary{}
	if ch.Snippet != nil {
		summary.Title = ch.Snippet.Title
		summary.Description = ch.Snippet.Description
		if ch.Snippet.Thumbnails != nil && ch.Snippet.Thumbnails.Default != nil {
			summary.Thumbnail = ch.Snippet.Thumbnails.Default.Url
		}
	}
	if ch.Statistics != nil {
		summary.SubscriberCount = ch.Statistics.SubscriberCount
		summary.VideoCount = ch.Statistics.VideoCount
		summary.ViewCount = ch.Statistics.ViewCount
	}

	return summary, nil
}

func mapVideo(v *youtube.Video) models.ContentItem {
	item := models.ContentItem{
		ID:         v.Id,
		Visibility: models.VisibilityUnknown,
	}

	if v.Snippet != nil {
		item.Title = v.Snippet.Title
		item.PublishedAt = v.Snippet.PublishedAt
		if v.Snippet.Thumbnails != nil && v.Snippet.Thumbnails.Medium != nil {
			item.Thumbnail = v.Snippet.Thumbnails.Medium.Url
		}
	}
	if v.ContentDetails != nil {
		item.DurationISO = v.ContentDetails.Duration
	}
	if v.Status != nil {
		item.Visibility = models.ParseVisibility(v.Status.PrivacyStatus)
	}

	return item
}

func chunkIDs(ids []string, size int) [][]string {
	if size <= 0 {
		size = detailsBatchSize
	}
	var chunks [][]string
	for i := 0; i < len(ids); i += size {
		end := i + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[i:end])
	}
	return chunks
}
