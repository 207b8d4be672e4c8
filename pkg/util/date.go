package util

import (
	"strconv"
	"time"
)

// isoNoZone matches the backend's timestamp format: datetime isoformat with
// no zone suffix. Go's parser accepts trailing fractional seconds on its own.
const isoNoZone = "2006-01-02T15:04:05"

// ParseTime tries RFC3339, RFC3339Nano, zone-less ISO, and unix seconds.
// Returns (t, true) if any worked. Zone-less input is taken as UTC.
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
	if t, err := time.Parse(isoNoZone, s); err == nil {
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

// FormatTimestamp renders t the way the backend does: zone-less UTC ISO with
// microsecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000")
}
