// Package staleness decides how old a cached snapshot may get before it must
// be flagged, and how its age reads to a human. Expiry is a read-time
// computation: nothing here deletes or mutates stored data.
package staleness

import (
	"fmt"
	"time"
)

// StaleAt reports whether data cached at cachedAt has exceeded maxAge as of
// now. An age exactly equal to maxAge is still fresh. Timestamps in the
// future (clock skew) count as fresh.
func StaleAt(cachedAt time.Time, maxAge time.Duration, now time.Time) bool {
	return now.Sub(cachedAt) > maxAge
}

// IsStale is StaleAt against the wall clock.
func IsStale(cachedAt time.Time, maxAge time.Duration) bool {
	return StaleAt(cachedAt, maxAge, time.Now())
}

// AgeLabelAt renders the age of cachedAt relative to now: "just now" under a
// minute, minutes under an hour, hours under a day, a calendar date beyond.
func AgeLabelAt(cachedAt, now time.Time) string {
	age := now.Sub(cachedAt)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%d min ago", int(age.Minutes()))
	case age < 24*time.Hour:
		hours := int(age.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	default:
		return cachedAt.Format("Jan 2, 2006")
	}
}

// AgeLabel is AgeLabelAt against the wall clock.
func AgeLabel(cachedAt time.Time) string {
	return AgeLabelAt(cachedAt, time.Now())
}
