package service

import "fmt"

// UpstreamError wraps a failed call against one of the YouTube APIs. The
// whole pass aborts on one; nothing partial is ever cached.
type UpstreamError struct {
	Op  string // "listing", "details", "analytics"
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s call failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ErrAnalyticsUnavailable marks a batched metrics query that returned no
// usable result. There is no automatic per-item fallback; the pass fails.
var ErrAnalyticsUnavailable = fmt.Errorf("analytics unavailable")
