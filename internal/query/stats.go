package query

import (
	"math"
	"sort"
	"time"

	"github.com/example/campus-events/internal/event"
)

// Stats summarises a snapshot for dashboard widgets.
type Stats struct {
	Total           int     `json:"total"`
	Upcoming        int     `json:"upcoming"`
	TotalAttendance int     `json:"total_attendance"`
	AverageRating   float64 `json:"average_rating"`
}

// AggregateStats computes counts, attendance and the mean rating of the rated
// records. An empty or fully unrated snapshot yields an average of zero.
func AggregateStats(snapshot []event.Record, now time.Time) Stats {
	var (
		stats     Stats
		ratingSum float64
		rated     int
	)
	stats.Total = len(snapshot)
	for _, rec := range snapshot {
		if IsUpcoming(rec, now) {
			stats.Upcoming++
		}
		stats.TotalAttendance += rec.Attendance
		if rec.Rated() {
			ratingSum += *rec.Rating
			rated++
		}
	}
	if rated > 0 {
		stats.AverageRating = ratingSum / float64(rated)
	}
	return stats
}

// CategoryCount aggregates the records sharing one category.
type CategoryCount struct {
	Category        event.Category `json:"category"`
	Events          int            `json:"events"`
	Attendance      int            `json:"attendance"`
	AttendanceShare int            `json:"attendance_share"`
}

// CategoryBreakdown groups the snapshot by category. Catalogue categories that
// occur come first in display order, followed by any other categories sorted
// by name. AttendanceShare is the category's percentage of total attendance.
func CategoryBreakdown(snapshot []event.Record) []CategoryCount {
	counts := make(map[event.Category]*CategoryCount)
	total := 0
	for _, rec := range snapshot {
		entry, ok := counts[rec.Category]
		if !ok {
			entry = &CategoryCount{Category: rec.Category}
			counts[rec.Category] = entry
		}
		entry.Events++
		entry.Attendance += rec.Attendance
		total += rec.Attendance
	}

	out := make([]CategoryCount, 0, len(counts))
	for _, cat := range event.Categories() {
		if entry, ok := counts[cat]; ok {
			out = append(out, *entry)
			delete(counts, cat)
		}
	}

	extra := make([]CategoryCount, 0, len(counts))
	for _, entry := range counts {
		extra = append(extra, *entry)
	}
	sort.Slice(extra, func(i, j int) bool {
		return extra[i].Category < extra[j].Category
	})
	out = append(out, extra...)

	for i := range out {
		out[i].AttendanceShare = Percent(out[i].Attendance, total)
	}
	return out
}

// Percent returns part/whole as a rounded percentage, or zero when whole is
// not positive.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
