package application

import (
	"strings"

	"github.com/example/campus-events/internal/event"
)

const (
	minRating = 0.0
	maxRating = 5.0
)

// validateEventInput re-checks the invariants the submission forms are
// expected to enforce. Category membership is deliberately not checked.
func validateEventInput(input event.Input) *ValidationError {
	vErr := validateSchedule(input)
	vErr.merge(validateFigures(input))
	return vErr
}

func validateSchedule(input event.Input) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	switch {
	case input.Date.IsZero():
		vErr.add("date", "date is required")
	case !input.Date.Valid():
		vErr.add("date", "date must be a real calendar day between years 1 and 9999")
	}
	if input.Time.Hour < 0 || input.Time.Hour > 23 || input.Time.Minute < 0 || input.Time.Minute > 59 {
		vErr.add("time", "time must be a valid time of day")
	}
	return vErr
}

func validateFigures(input event.Input) *ValidationError {
	vErr := &ValidationError{}
	if input.Attendance < 0 {
		vErr.add("attendance", "attendance must not be negative")
	}
	if input.Rating != nil && !(*input.Rating >= minRating && *input.Rating <= maxRating) {
		vErr.add("rating", "rating must be between 0 and 5")
	}
	return vErr
}

// normalizeRecord builds the stored form of input under id.
func normalizeRecord(id string, input event.Input) event.Record {
	image := strings.TrimSpace(input.Image)
	if image == "" {
		image = event.DefaultImage
	}
	var rating *float64
	if input.Rating != nil {
		rating = event.Float(*input.Rating)
	}
	return event.Record{
		ID:         id,
		Title:      strings.TrimSpace(input.Title),
		Date:       input.Date,
		Time:       input.Time,
		Category:   event.Category(strings.TrimSpace(string(input.Category))),
		Location:   strings.TrimSpace(input.Location),
		Image:      image,
		Attendance: input.Attendance,
		Rating:     rating,
	}
}
