package query

import (
	"sort"
	"strings"
	"time"

	"github.com/example/campus-events/internal/event"
)

// CategoryAll disables category narrowing in Filter.
const CategoryAll = "all"

// Filter returns the records matching category and search, preserving the
// snapshot order. A record matches when its category equals category (or
// category is CategoryAll or empty) and search is a case-insensitive
// substring of its title or location. An empty search matches everything.
func Filter(snapshot []event.Record, search, category string) []event.Record {
	needle := strings.ToLower(search)
	out := make([]event.Record, 0, len(snapshot))
	for _, rec := range snapshot {
		if !matchesCategory(rec, category) {
			continue
		}
		if !matchesSearch(rec, needle) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesCategory(rec event.Record, category string) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	return string(rec.Category) == category
}

func matchesSearch(rec event.Record, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(rec.Title), needle) ||
		strings.Contains(strings.ToLower(rec.Location), needle)
}

// IsUpcoming reports whether the record's date falls strictly after the
// calendar date of now. Time of day is ignored.
func IsUpcoming(rec event.Record, now time.Time) bool {
	return rec.Date.After(event.DateOf(now))
}

// UpcomingOrdered returns the records dated strictly after today in ascending
// date order. Records sharing a date are ordered by time of day and then by
// snapshot order. A limit of zero or less disables truncation.
func UpcomingOrdered(snapshot []event.Record, now time.Time, limit int) []event.Record {
	upcoming := make([]event.Record, 0, len(snapshot))
	for _, rec := range snapshot {
		if IsUpcoming(rec, now) {
			upcoming = append(upcoming, rec)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		if cmp := upcoming[i].Date.Compare(upcoming[j].Date); cmp != 0 {
			return cmp < 0
		}
		return upcoming[i].Time.Minutes() < upcoming[j].Time.Minutes()
	})

	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}
