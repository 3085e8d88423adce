package quota

import (
	"testing"
	"time"

	"github.com/creatorstats/youtube-dashboard-go/pkg/logger"
)

func init() {
	// Initialize logger to prevent nil pointer errors
	_ = logger.Init("error", "")
}

func TestLedger_RecordAndRemaining(t *testing.T) {
	l := NewLedger(1000)

	l.Record(CostSearchList, "search.list")
	l.Record(CostVideosList, "videos.list")

	if got := l.Used(); got != 101 {
		t.Errorf("Used() = %d, want 101", got)
	}
	if got := l.Remaining(); got != 899 {
		t.Errorf("Remaining() = %d, want 899", got)
	}
}

func TestLedger_RemainingNeverNegative(t *testing.T) {
	l := NewLedger(50)
	l.Record(200, "search.list")

	if got := l.Remaining(); got != 0 {
		t.Errorf("Remaining() = %d, want 0", got)
	}
}

func TestLedger_DefaultLimit(t *testing.T) {
	l := NewLedger(0)
	if l.dailyLimit != 10000 {
		t.Errorf("dailyLimit = %d, want 10000", l.dailyLimit)
	}
}

func TestLedger_DailyRollover(t *testing.T) {
	l := NewLedger(1000)
	day := time.Date(2025, 8, 30, 23, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return day }

	l.Record(500, "search.list")
	if got := l.Used(); got != 500 {
		t.Fatalf("Used() = %d, want 500", got)
	}

	// Next UTC day zeroes the counter.
	l.now = func() time.Time { return day.Add(2 * time.Hour) }
	if got := l.Used(); got != 0 {
		t.Errorf("Used() after rollover = %d, want 0", got)
	}
}
