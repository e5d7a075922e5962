package util

import (
	"strconv"
	"time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// LookbackRange returns [from, to] covering lookbackDays calendar days ending
// at t, aligned to UTC day boundaries. Day alignment keeps the range stable
// for the whole trading day, so repeated fetches reuse the same cache key.
func LookbackRange(t time.Time, lookbackDays int) (time.Time, time.Time) {
	to := t.UTC().Truncate(24 * time.Hour).Add(24*time.Hour - time.Second)
	from := to.AddDate(0, 0, -lookbackDays)
	return from, to
}
