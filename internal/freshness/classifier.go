// Package freshness decides whether an event record is displayed as new or
// recently updated. Every function takes the reference time explicitly.
package freshness

import (
	"fmt"
	"time"

	"github.com/example/campus-events/internal/event"
)

// Window is how long a creation or update keeps a record fresh.
const Window = 24 * time.Hour

// Badge is the freshness marker shown next to a record.
type Badge string

const (
	// BadgeNone marks a record that is neither new nor recently updated.
	BadgeNone Badge = ""
	// BadgeNew marks a record created within the freshness window.
	BadgeNew Badge = "new"
	// BadgeUpdated marks a record updated within the freshness window.
	BadgeUpdated Badge = "updated"
)

// IsNew reports whether fewer than 24 hours have elapsed since creation.
func IsNew(rec event.Record, now time.Time) bool {
	return now.Sub(rec.CreatedAt) < Window
}

// IsRecentlyUpdated reports whether the record has been updated and fewer
// than 24 hours have elapsed since that update.
func IsRecentlyUpdated(rec event.Record, now time.Time) bool {
	if rec.UpdatedAt == nil {
		return false
	}
	return now.Sub(*rec.UpdatedAt) < Window
}

// Classify returns the badge to display. New takes precedence over updated,
// so a record edited shortly after creation is still shown as new.
func Classify(rec event.Record, now time.Time) Badge {
	switch {
	case IsNew(rec, now):
		return BadgeNew
	case IsRecentlyUpdated(rec, now):
		return BadgeUpdated
	default:
		return BadgeNone
	}
}

// RelativeLabel renders t relative to now, e.g. "5 minutes ago" or
// "in 3 days". Anything within the last minute is "Just now".
func RelativeLabel(t, now time.Time) string {
	elapsed := now.Sub(t)
	switch {
	case elapsed > -time.Minute && elapsed < time.Minute:
		return "Just now"
	case elapsed < 0:
		return "in " + span(-elapsed)
	default:
		return span(elapsed) + " ago"
	}
}

func span(d time.Duration) string {
	switch {
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/(24*time.Hour)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
