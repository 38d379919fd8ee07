package persistence

import (
	"context"

	"github.com/example/campus-events/internal/event"
)

// EventRepository stores event records for the lifetime of a session.
//
// Implementations keep a default retrieval order in which the most recently
// inserted record comes first, and must never hand out values that alias their
// internal state.
type EventRepository interface {
	InsertEvent(ctx context.Context, rec event.Record) error
	ReplaceEvent(ctx context.Context, rec event.Record) error
	GetEvent(ctx context.Context, id string) (event.Record, error)
	EventExists(ctx context.Context, id string) (bool, error)
	ListEvents(ctx context.Context) ([]event.Record, error)
	CountEvents(ctx context.Context) (int, error)
}
