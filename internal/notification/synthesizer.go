// Package notification derives the notification feed from a snapshot of event
// records. Nothing here is persisted; the feed is recomputed on every read.
package notification

import (
	"fmt"
	"sort"
	"time"

	"github.com/example/campus-events/internal/event"
	"github.com/example/campus-events/internal/freshness"
)

// UpcomingWindow bounds how far ahead an upcoming reminder is produced.
const UpcomingWindow = 7 * 24 * time.Hour

// Kind identifies why an entry was synthesized.
type Kind string

const (
	// KindCreated reports a record created within the freshness window.
	KindCreated Kind = "created"
	// KindUpdated reports a record updated within the freshness window.
	KindUpdated Kind = "updated"
	// KindUpcoming reminds about a record taking place within a week.
	KindUpcoming Kind = "upcoming"
)

// Entry is a single feed item.
type Entry struct {
	Key            string    `json:"key"`
	Kind           Kind      `json:"kind"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Timestamp      time.Time `json:"timestamp"`
	SourceRecordID string    `json:"source_record_id"`
}

// Counts tallies feed entries per kind.
type Counts struct {
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Upcoming int `json:"upcoming"`
}

// Feed is an ordered list of entries, most recent timestamp first.
type Feed []Entry

// Synthesize builds the feed for snapshot relative to now. Each record yields
// at most one created, one updated and one upcoming entry. Created and updated
// entries are independent: a record created and edited within the same window
// produces both. Entries are sorted by timestamp descending; ties keep the
// snapshot order of their records.
func Synthesize(snapshot []event.Record, now time.Time) Feed {
	feed := make(Feed, 0, len(snapshot))
	for _, rec := range snapshot {
		if freshness.IsNew(rec, now) {
			feed = append(feed, createdEntry(rec))
		}
		if freshness.IsRecentlyUpdated(rec, now) {
			feed = append(feed, updatedEntry(rec))
		}
		if at, ok := reminderTime(rec, now); ok {
			feed = append(feed, upcomingEntry(rec, at))
		}
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	return feed
}

// reminderTime returns the start of the record's date in now's location when
// it lies within (now, now+UpcomingWindow].
func reminderTime(rec event.Record, now time.Time) (time.Time, bool) {
	if rec.Date.IsZero() {
		return time.Time{}, false
	}
	at := rec.Date.Midnight(now.Location())
	until := at.Sub(now)
	if until <= 0 || until > UpcomingWindow {
		return time.Time{}, false
	}
	return at, true
}

func createdEntry(rec event.Record) Entry {
	return Entry{
		Key:            "created-" + rec.ID,
		Kind:           KindCreated,
		Title:          "New Event Created",
		Message:        fmt.Sprintf(`"%s" has been added to the calendar`, rec.Title),
		Timestamp:      rec.CreatedAt,
		SourceRecordID: rec.ID,
	}
}

func updatedEntry(rec event.Record) Entry {
	return Entry{
		Key:            "updated-" + rec.ID,
		Kind:           KindUpdated,
		Title:          "Event Updated",
		Message:        fmt.Sprintf(`"%s" details have been modified`, rec.Title),
		Timestamp:      *rec.UpdatedAt,
		SourceRecordID: rec.ID,
	}
}

func upcomingEntry(rec event.Record, at time.Time) Entry {
	return Entry{
		Key:            "upcoming-" + rec.ID,
		Kind:           KindUpcoming,
		Title:          "Upcoming Event Reminder",
		Message:        fmt.Sprintf(`"%s" is happening on %s`, rec.Title, rec.Date),
		Timestamp:      at,
		SourceRecordID: rec.ID,
	}
}

// Counts tallies the entries of each kind.
func (f Feed) Counts() Counts {
	var c Counts
	for _, entry := range f {
		switch entry.Kind {
		case KindCreated:
			c.Created++
		case KindUpdated:
			c.Updated++
		case KindUpcoming:
			c.Upcoming++
		}
	}
	return c
}

// OfKind returns the entries of the given kind, preserving feed order.
func (f Feed) OfKind(kind Kind) Feed {
	out := make(Feed, 0, len(f))
	for _, entry := range f {
		if entry.Kind == kind {
			out = append(out, entry)
		}
	}
	return out
}

// Len returns the number of entries.
func (f Feed) Len() int {
	return len(f)
}
