package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestLookbackRange(t *testing.T) {
	now := time.Date(2024, 10, 10, 14, 30, 0, 0, time.UTC)
	from, to := LookbackRange(now, 60)
	if to.Before(now) {
		t.Fatalf("to %v should cover now %v", to, now)
	}
	if to.Day() != 10 {
		t.Fatalf("to should stay on the same day, got %v", to)
	}
	if got := to.Sub(from); got < 59*24*time.Hour || got > 61*24*time.Hour {
		t.Fatalf("unexpected span %v", got)
	}
	// same trading day must produce the same range
	from2, to2 := LookbackRange(now.Add(3*time.Hour), 60)
	if !from.Equal(from2) || !to.Equal(to2) {
		t.Fatalf("range not stable within a day")
	}
}
