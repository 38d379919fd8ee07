package query

import (
	"math"
	"testing"

	"github.com/example/campus-events/internal/event"
)

func TestAggregateStats(t *testing.T) {
	t.Parallel()

	t.Run("empty snapshot yields zeros", func(t *testing.T) {
		got := AggregateStats(nil, referenceNow)
		if got != (Stats{}) {
			t.Fatalf("expected zero stats, got %+v", got)
		}
	})

	t.Run("unrated snapshot averages to zero", func(t *testing.T) {
		snapshot := []event.Record{
			{ID: "1", Attendance: 10, Date: event.NewDate(2025, 1, 11)},
			{ID: "2", Attendance: 5, Date: event.NewDate(2025, 1, 1)},
		}
		got := AggregateStats(snapshot, referenceNow)
		want := Stats{Total: 2, Upcoming: 1, TotalAttendance: 15, AverageRating: 0}
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("average covers rated records only", func(t *testing.T) {
		snapshot := []event.Record{
			{ID: "1", Attendance: 250, Rating: event.Float(4.5), Date: event.NewDate(2025, 1, 15)},
			{ID: "2", Attendance: 500, Rating: event.Float(5.0), Date: event.NewDate(2025, 2, 20)},
			{ID: "3", Attendance: 80, Date: event.NewDate(2025, 1, 10)},
			{ID: "4", Attendance: 0, Rating: event.Float(0), Date: event.NewDate(2024, 12, 1)},
		}
		got := AggregateStats(snapshot, referenceNow)
		if got.Total != 4 {
			t.Fatalf("expected total 4, got %d", got.Total)
		}
		if got.Upcoming != 2 {
			t.Fatalf("expected 2 upcoming, got %d", got.Upcoming)
		}
		if got.TotalAttendance != 830 {
			t.Fatalf("expected attendance 830, got %d", got.TotalAttendance)
		}
		if math.Abs(got.AverageRating-9.5/3) > 1e-9 {
			t.Fatalf("expected average %v, got %v", 9.5/3, got.AverageRating)
		}
	})

	t.Run("event dated today is not upcoming", func(t *testing.T) {
		snapshot := []event.Record{{ID: "today", Date: event.NewDate(2025, 1, 10)}}
		if got := AggregateStats(snapshot, referenceNow); got.Upcoming != 0 {
			t.Fatalf("expected 0 upcoming, got %d", got.Upcoming)
		}
	})
}

func TestCategoryBreakdown(t *testing.T) {
	t.Parallel()

	snapshot := []event.Record{
		{ID: "1", Category: "sports", Attendance: 50},
		{ID: "2", Category: event.CategoryWorkshop, Attendance: 100},
		{ID: "3", Category: event.CategoryTechnology, Attendance: 250},
		{ID: "4", Category: event.CategoryTechnology, Attendance: 50},
		{ID: "5", Category: "alumni", Attendance: 50},
	}

	got := CategoryBreakdown(snapshot)
	want := []CategoryCount{
		{Category: event.CategoryTechnology, Events: 2, Attendance: 300, AttendanceShare: 60},
		{Category: event.CategoryWorkshop, Events: 1, Attendance: 100, AttendanceShare: 20},
		{Category: "alumni", Events: 1, Attendance: 50, AttendanceShare: 10},
		{Category: "sports", Events: 1, Attendance: 50, AttendanceShare: 10},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("category %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestCategoryBreakdownZeroAttendance(t *testing.T) {
	t.Parallel()

	got := CategoryBreakdown([]event.Record{{ID: "1", Category: event.CategoryTraining}})
	if len(got) != 1 || got[0].AttendanceShare != 0 {
		t.Fatalf("expected a single zero-share entry, got %+v", got)
	}
	if got := CategoryBreakdown(nil); len(got) != 0 {
		t.Fatalf("expected no categories for empty snapshot, got %+v", got)
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		part, whole, want int
	}{
		{part: 0, whole: 0, want: 0},
		{part: 5, whole: 0, want: 0},
		{part: 1, whole: 3, want: 33},
		{part: 2, whole: 3, want: 67},
		{part: 10, whole: 10, want: 100},
	}
	for _, tc := range cases {
		if got := Percent(tc.part, tc.whole); got != tc.want {
			t.Fatalf("Percent(%d, %d) = %d, want %d", tc.part, tc.whole, got, tc.want)
		}
	}
}
