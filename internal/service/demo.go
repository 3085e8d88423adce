package service

import "github.com/creatorstats/youtube-dashboard-go/internal/models"

// DemoVideos returns the canned record set served when the listing source
// is down and demo mode is enabled. It keeps the dashboard exercisable
// during upstream quota exhaustion and is never cached or mixed with real
// data.
func DemoVideos() []models.EnrichedVideo {
	return []models.EnrichedVideo{
		{
			VideoID:         "demo-001",
			Title:           "How I Edit My Videos in Under an Hour",
			Thumbnail:       "https://i.ytimg.com/vi/demo-001/mqdefault.jpg",
			Published:       "2025-06-14",
			VideoLength:     "8:42",
			DurationSeconds: 522,
			Views:           18432,
			Likes:           1210,
			WatchTime:       201.4,
			Watched:         38.6,
			SubsGained:      96,
		},
		{
			VideoID:         "demo-002",
			Title:           "My Desk Setup Tour (2025)",
			Thumbnail:       "https://i.ytimg.com/vi/demo-002/mqdefault.jpg",
			Published:       "2025-05-02",
			VideoLength:     "12:05",
			DurationSeconds: 725,
			Views:           9107,
			Likes:           644,
			WatchTime:       310.2,
			Watched:         42.8,
			SubsGained:      41,
		},
		{
			VideoID:         "demo-003",
			Title:           "Why I Almost Quit YouTube",
			Thumbnail:       "https://i.ytimg.com/vi/demo-003/mqdefault.jpg",
			Published:       "2025-03-21",
			VideoLength:     "6:18",
			DurationSeconds: 378,
			Views:           55210,
			Likes:           4870,
			WatchTime:       245.9,
			Watched:         65.1,
			SubsGained:      512,
		},
		{
			VideoID:         "demo-004",
			Title:           "Answering Your Questions",
			Thumbnail:       "https://i.ytimg.com/vi/demo-004/mqdefault.jpg",
			Published:       "2025-02-08",
			VideoLength:     "15:33",
			DurationSeconds: 933,
			Views:           3421,
			Likes:           287,
			WatchTime:       188.0,
			Watched:         20.1,
			SubsGained:      -3,
		},
	}
}
