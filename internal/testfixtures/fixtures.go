package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/campus-events/internal/event"
)

var eventCounter uint64

// referenceTime sits a few days before the seed calendar so that some seed
// events are upcoming and others are past.
var referenceTime = time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ReferenceDate returns the calendar date of ReferenceTime.
func ReferenceDate() event.Date {
	return event.DateOf(referenceTime)
}

// EventFixture represents a deterministic event that can be materialised as a
// store input or as a stored record.
type EventFixture struct {
	ID         string
	Title      string
	Date       event.Date
	Time       event.TimeOfDay
	Category   event.Category
	Location   string
	Image      string
	Attendance int
	Rating     *float64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// EventOption configures the generated event fixture.
type EventOption func(*EventFixture)

// NewEventFixture returns a deterministic event fixture with optional
// overrides. Each call yields a new ID and a creation time one minute later
// than the previous fixture.
func NewEventFixture(opts ...EventOption) EventFixture {
	idx := atomic.AddUint64(&eventCounter, 1)
	fixture := EventFixture{
		ID:         fmt.Sprintf("event-%03d", idx),
		Title:      fmt.Sprintf("Event %03d", idx),
		Date:       event.DateOf(referenceTime.AddDate(0, 0, 3)),
		Time:       event.TimeOfDay{Hour: 10},
		Category:   event.CategoryTechnology,
		Location:   "Main Auditorium",
		Image:      event.DefaultImage,
		Attendance: 100,
		CreatedAt:  referenceTime.Add(-time.Duration(idx) * time.Minute),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// Input converts the fixture into a store submission.
func (f EventFixture) Input() event.Input {
	return f.Record().Input()
}

// Record converts the fixture into a stored record.
func (f EventFixture) Record() event.Record {
	rec := event.Record{
		ID:         f.ID,
		Title:      f.Title,
		Date:       f.Date,
		Time:       f.Time,
		Category:   f.Category,
		Location:   f.Location,
		Image:      f.Image,
		Attendance: f.Attendance,
		Rating:     f.Rating,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
	return rec.Clone()
}

// WithEventID overrides the generated ID.
func WithEventID(id string) EventOption {
	return func(f *EventFixture) {
		f.ID = id
	}
}

// WithEventTitle overrides the generated title.
func WithEventTitle(title string) EventOption {
	return func(f *EventFixture) {
		f.Title = title
	}
}

// WithEventDate sets the calendar date.
func WithEventDate(date event.Date) EventOption {
	return func(f *EventFixture) {
		f.Date = date
	}
}

// WithEventDaysFromReference places the event n days after ReferenceTime.
// Negative values place it in the past.
func WithEventDaysFromReference(n int) EventOption {
	return func(f *EventFixture) {
		f.Date = event.DateOf(referenceTime.AddDate(0, 0, n))
	}
}

// WithEventTime sets the time of day.
func WithEventTime(hour, minute int) EventOption {
	return func(f *EventFixture) {
		f.Time = event.TimeOfDay{Hour: hour, Minute: minute}
	}
}

// WithEventCategory sets the category.
func WithEventCategory(category event.Category) EventOption {
	return func(f *EventFixture) {
		f.Category = category
	}
}

// WithEventLocation sets the location.
func WithEventLocation(location string) EventOption {
	return func(f *EventFixture) {
		f.Location = location
	}
}

// WithEventAttendance sets the attendance.
func WithEventAttendance(attendance int) EventOption {
	return func(f *EventFixture) {
		f.Attendance = attendance
	}
}

// WithEventRating sets the rating.
func WithEventRating(rating float64) EventOption {
	return func(f *EventFixture) {
		f.Rating = event.Float(rating)
	}
}

// WithEventUnrated clears the rating.
func WithEventUnrated() EventOption {
	return func(f *EventFixture) {
		f.Rating = nil
	}
}

// WithEventCreatedAt sets the creation timestamp.
func WithEventCreatedAt(t time.Time) EventOption {
	return func(f *EventFixture) {
		f.CreatedAt = t
	}
}

// WithEventUpdatedAt sets the update timestamp.
func WithEventUpdatedAt(t time.Time) EventOption {
	return func(f *EventFixture) {
		updated := t
		f.UpdatedAt = &updated
	}
}

// SeedInputs returns the four sample events the campus calendar ships with.
func SeedInputs() []event.Input {
	return []event.Input{
		{
			Title:      "Tech Innovation Summit 2025",
			Date:       event.NewDate(2025, time.January, 15),
			Time:       event.TimeOfDay{Hour: 9},
			Category:   event.CategoryTechnology,
			Location:   "Main Auditorium",
			Image:      "https://images.unsplash.com/photo-1592758080692-b6a5dbe9c725?w=800",
			Attendance: 250,
			Rating:     event.Float(4.5),
		},
		{
			Title:      "Cultural Festival 2025",
			Date:       event.NewDate(2025, time.February, 20),
			Time:       event.TimeOfDay{Hour: 14},
			Category:   event.CategoryCultural,
			Location:   "Campus Grounds",
			Image:      "https://images.unsplash.com/photo-1639369501176-f40a0641c91f?w=800",
			Attendance: 500,
			Rating:     event.Float(4.8),
		},
		{
			Title:      "Leadership Workshop",
			Date:       event.NewDate(2025, time.January, 25),
			Time:       event.TimeOfDay{Hour: 10},
			Category:   event.CategoryWorkshop,
			Location:   "Room 301",
			Image:      "https://images.unsplash.com/photo-1765438863717-49fca900f861?w=800",
			Attendance: 80,
			Rating:     event.Float(4.3),
		},
		{
			Title:      "Graduation Ceremony",
			Date:       event.NewDate(2025, time.June, 15),
			Time:       event.TimeOfDay{Hour: 11},
			Category:   event.CategorySpecialDays,
			Location:   "Grand Hall",
			Image:      "https://images.unsplash.com/photo-1623461487986-9400110de28e?w=800",
			Attendance: 800,
			Rating:     event.Float(5.0),
		},
	}
}
