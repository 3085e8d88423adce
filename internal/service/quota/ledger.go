// Package quota tracks YouTube API quota consumption per UTC day. It is a
// bookkeeping ledger, not a rate limiter: passes are never blocked, but the
// remaining budget is logged and exported so exhaustion is visible before
// the upstream starts rejecting calls.
package quota

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/creatorstats/youtube-dashboard-go/pkg/logger"
)

// Known per-call costs of the operations this service issues.
const (
	CostSearchList = 100 // search.list is by far the most expensive call
	CostVideosList = 1   // per chunk of 50 ids
	CostAnalytics  = 1   // reports.query, separate pool upstream but tracked anyway
)

var quotaUsed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "dashboard_youtube_quota_units_total",
	Help: "YouTube API quota units consumed, by operation.",
}, []string{"operation"})

// Ledger accumulates quota units against a daily limit, resetting at UTC
// midnight.
type Ledger struct {
	mu         sync.Mutex
	dailyLimit int
	used       int
	day        time.Time
	now        func() time.Time
}

// NewLedger creates a ledger with the given daily limit. Non-positive
// limits fall back to the YouTube API v3 default of 10000 units.
func NewLedger(dailyLimit int) *Ledger {
	if dailyLimit <= 0 {
		dailyLimit = 10000
	}
	return &Ledger{dailyLimit: dailyLimit, now: time.Now}
}

// Record adds cost units under the named operation.
func (l *Ledger) Record(cost int, operation string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollover()
	l.used += cost
	quotaUsed.WithLabelValues(operation).Add(float64(cost))

	if l.used*10 >= l.dailyLimit*9 {
		logger.Log.Warn("approaching daily YouTube quota limit",
			zap.Int("used", l.used),
			zap.Int("limit", l.dailyLimit),
			zap.String("operation", operation),
		)
	}
}

// Used returns the units recorded so far today.
func (l *Ledger) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover()
	return l.used
}

// Remaining returns the units left before the daily limit.
func (l *Ledger) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollover()
	if r := l.dailyLimit - l.used; r > 0 {
		return r
	}
	return 0
}

// rollover zeroes the counter when the UTC day has changed. Callers hold mu.
func (l *Ledger) rollover() {
	today := l.now().UTC().Truncate(24 * time.Hour)
	if !today.Equal(l.day) {
		l.day = today
		l.used = 0
	}
}
