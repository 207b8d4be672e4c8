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

func TestParseTimeZoneless(t *testing.T) {
	got, ok := ParseTime("2026-08-25T12:34:56.789012")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2026, 8, 25, 12, 34, 56, 789012000, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// Without fractional seconds.
	got, ok = ParseTime("2026-08-25T12:34:56")
	if !ok {
		t.Fatalf("expected ok")
	}
	if !got.Equal(time.Date(2026, 8, 25, 12, 34, 56, 0, time.UTC)) {
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

func TestFormatTimestampRoundTrip(t *testing.T) {
	orig := time.Date(2026, 8, 25, 9, 0, 3, 120000000, time.UTC)
	s := FormatTimestamp(orig)
	if s != "2026-08-25T09:00:03.120000" {
		t.Fatalf("unexpected format %q", s)
	}
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected formatted timestamp to parse")
	}
	if !got.Equal(orig) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, orig)
	}
}
