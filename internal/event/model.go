package event

import "time"

// DefaultImage is assigned to records submitted without an image.
const DefaultImage = "https://images.unsplash.com/photo-1613687969216-40c7b718c025?w=800"

// Category labels an event. The set is open: the catalogue below lists the
// categories offered by the submission form, but any value is accepted.
type Category string

const (
	// CategoryTechnology covers technology talks and summits.
	CategoryTechnology Category = "technology"
	// CategoryConference covers academic conferences.
	CategoryConference Category = "conference"
	// CategoryCultural covers festivals and cultural programmes.
	CategoryCultural Category = "cultural"
	// CategoryWorkshop covers hands-on workshops.
	CategoryWorkshop Category = "workshop"
	// CategoryTraining covers training sessions.
	CategoryTraining Category = "training"
	// CategorySpecialDays covers ceremonies and other special days.
	CategorySpecialDays Category = "special days"
)

var catalogue = []Category{
	CategoryTechnology,
	CategoryConference,
	CategoryCultural,
	CategoryWorkshop,
	CategoryTraining,
	CategorySpecialDays,
}

// Categories returns the catalogue in display order.
func Categories() []Category {
	out := make([]Category, len(catalogue))
	copy(out, catalogue)
	return out
}

// InCatalogue reports whether c is one of the catalogue categories.
func (c Category) InCatalogue() bool {
	for _, known := range catalogue {
		if c == known {
			return true
		}
	}
	return false
}

// Input captures the caller supplied fields of a new event.
type Input struct {
	Title      string
	Date       Date
	Time       TimeOfDay
	Category   Category
	Location   string
	Image      string
	Attendance int
	Rating     *float64
}

// Record is a scheduled campus event owned by the event store.
type Record struct {
	ID         string
	Title      string
	Date       Date
	Time       TimeOfDay
	Category   Category
	Location   string
	Image      string
	Attendance int
	Rating     *float64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Input returns the mutable portion of the record.
func (r Record) Input() Input {
	return Input{
		Title:      r.Title,
		Date:       r.Date,
		Time:       r.Time,
		Category:   r.Category,
		Location:   r.Location,
		Image:      r.Image,
		Attendance: r.Attendance,
		Rating:     cloneFloat(r.Rating),
	}
}

// Clone returns a deep copy of the record so callers cannot alias store state.
func (r Record) Clone() Record {
	out := r
	out.Rating = cloneFloat(r.Rating)
	if r.UpdatedAt != nil {
		updated := *r.UpdatedAt
		out.UpdatedAt = &updated
	}
	return out
}

// CloneAll deep copies every record in records.
func CloneAll(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = rec.Clone()
	}
	return out
}

// Rated reports whether the record carries a rating.
func (r Record) Rated() bool {
	return r.Rating != nil
}

// Float returns a pointer to v, convenient for optional ratings.
func Float(v float64) *float64 {
	return &v
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
