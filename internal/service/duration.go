package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrMalformedDuration is returned when a duration string does not match the
// ISO-8601 duration grammar. Items carrying one are skipped, not fatal.
var ErrMalformedDuration = fmt.Errorf("malformed ISO-8601 duration")

// isoDurationRe matches the subset of ISO-8601 durations YouTube emits:
// an optional day component and an optional time component, e.g. PT4M13S,
// PT1H2M3S, P1DT2H, PT0.5S.
var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseISODuration converts an ISO-8601 duration string into seconds.
func ParseISODuration(s string) (float64, error) {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "PT" {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, s)
	}

	var total float64
	if m[1] != "" {
		d, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, s)
		}
		total += d * 86400
	}
	if m[2] != "" {
		h, _ := strconv.ParseFloat(m[2], 64)
		total += h * 3600
	}
	if m[3] != "" {
		min, _ := strconv.ParseFloat(m[3], 64)
		total += min * 60
	}
	if m[4] != "" {
		sec, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, s)
		}
		total += sec
	}

	return total, nil
}

// FormatSeconds renders a second count as a minutes:seconds display string.
// With padMinutes the minutes are zero-padded to two digits (MM:SS),
// otherwise they are left unpadded (M:SS).
func FormatSeconds(seconds float64, padMinutes bool) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := int(seconds) / 60
	secs := int(seconds) % 60
	if padMinutes {
		return fmt.Sprintf("%02d:%02d", minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// PercentWatched computes the share of a video watched on average, as a
// percentage rounded to one decimal place. Zero-length videos yield 0.
func PercentWatched(avgViewSeconds, totalSeconds float64) float64 {
	if totalSeconds <= 0 {
		return 0.0
	}
	return math.Round(avgViewSeconds/totalSeconds*1000) / 10
}
