package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/campus-events/internal/event"
	"github.com/example/campus-events/internal/persistence"
	"github.com/example/campus-events/internal/persistence/memory"
)

// maxIDAttempts bounds how many generated identifiers are tried before
// Create gives up with ErrIDUnavailable.
const maxIDAttempts = 8

// Observer is notified about store mutations. Implementations must not call
// back into the store.
type Observer interface {
	EventCreated(rec event.Record)
	EventUpdated(rec event.Record)
	MutationFailed(operation, kind string)
}

type noopObserver struct{}

func (noopObserver) EventCreated(event.Record)     {}
func (noopObserver) EventUpdated(event.Record)     {}
func (noopObserver) MutationFailed(string, string) {}

// EventStore owns the authoritative event collection. Every mutation passes
// through it and mutations are serialized, so identifiers stay unique and
// no reader observes a half-applied change.
type EventStore struct {
	mu          sync.Mutex
	events      persistence.EventRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
	observer    Observer
	views       *viewCache
	version     uint64
}

// NewEventStore wires dependencies for event operations.
func NewEventStore(events persistence.EventRepository, idGenerator func() string, now func() time.Time) *EventStore {
	return NewEventStoreWithLogger(events, idGenerator, now, nil)
}

// NewEventStoreWithLogger constructs an event store with a specified logger.
// A nil repository selects in-process memory storage, a nil generator selects
// UUIDv7 identifiers and a nil clock selects time.Now.
func NewEventStoreWithLogger(events persistence.EventRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *EventStore {
	if events == nil {
		events = memory.NewStorage()
	}
	if idGenerator == nil {
		idGenerator = NewIDGenerator()
	}
	if now == nil {
		now = time.Now
	}
	return &EventStore{
		events:      events,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
		observer:    noopObserver{},
		views:       newViewCache(0, 0, now),
	}
}

// NewIDGenerator returns a generator of UUIDv7 identifiers. They are time
// ordered and monotonic within the process, even for calls in the same
// millisecond.
func NewIDGenerator() func() string {
	return func() string {
		id, err := uuid.NewV7()
		if err != nil {
			return uuid.NewString()
		}
		return id.String()
	}
}

// SetObserver registers an observer for store mutations. A nil observer
// restores the no-op default.
func (s *EventStore) SetObserver(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if observer == nil {
		observer = noopObserver{}
	}
	s.observer = observer
}

// ConfigureViewCache replaces the dashboard cache with one using the given
// TTL and capacity. Non-positive values select the defaults.
func (s *EventStore) ConfigureViewCache(ttl time.Duration, maxEntries int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = newViewCache(ttl, maxEntries, s.now)
}

func (s *EventStore) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EventStore", operation, attrs...)
}

// Create validates input, assigns a fresh identifier and creation time and
// stores the record ahead of all existing ones. Title, location and category
// are trimmed and an empty image becomes event.DefaultImage.
func (s *EventStore) Create(ctx context.Context, input event.Input) (rec event.Record, err error) {
	if s == nil {
		err = fmt.Errorf("EventStore is nil")
		return
	}

	logger := s.loggerWith(ctx, "Create")
	defer func() {
		if err != nil {
			s.reportFailure("create", err)
			logger.ErrorContext(ctx, "failed to create event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("event_id", rec.ID).InfoContext(ctx, "event created")
	}()

	if vErr := validateEventInput(input); vErr.HasErrors() {
		err = vErr
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	id, err = s.allocateID(ctx)
	if err != nil {
		return
	}

	created := normalizeRecord(id, input)
	created.CreatedAt = s.now()

	if err = s.events.InsertEvent(ctx, created); err != nil {
		err = mapEventRepoError(err)
		return
	}

	s.committed()
	s.observer.EventCreated(created.Clone())
	rec = created.Clone()
	return
}

// Update replaces every field of the stored record with the same ID except
// ID and CreatedAt, and stamps UpdatedAt. The supplied values are normalized
// as on Create: title, location and category are trimmed and an empty image
// becomes event.DefaultImage. Unknown IDs yield ErrNotFound and leave the
// collection untouched.
func (s *EventStore) Update(ctx context.Context, record event.Record) (rec event.Record, err error) {
	if s == nil {
		err = fmt.Errorf("EventStore is nil")
		return
	}

	logger := s.loggerWith(ctx, "Update", "event_id", record.ID)
	defer func() {
		if err != nil {
			s.reportFailure("update", err)
			logger.ErrorContext(ctx, "failed to update event", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "event updated")
	}()

	if record.ID == "" {
		err = ErrNotFound
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var existing event.Record
	existing, err = s.events.GetEvent(ctx, record.ID)
	if err != nil {
		err = mapEventRepoError(err)
		return
	}

	if vErr := validateEventInput(record.Input()); vErr.HasErrors() {
		err = vErr
		return
	}

	updated := normalizeRecord(existing.ID, record.Input())
	updated.CreatedAt = existing.CreatedAt
	updatedAt := s.now()
	if updatedAt.Before(existing.CreatedAt) {
		updatedAt = existing.CreatedAt
	}
	updated.UpdatedAt = &updatedAt

	if err = s.events.ReplaceEvent(ctx, updated); err != nil {
		err = mapEventRepoError(err)
		return
	}

	s.committed()
	s.observer.EventUpdated(updated.Clone())
	rec = updated.Clone()
	return
}

// List returns a snapshot of the collection, most recently created first.
// The snapshot shares no memory with the store.
func (s *EventStore) List(ctx context.Context) ([]event.Record, error) {
	if s == nil {
		return nil, fmt.Errorf("EventStore is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, mapEventRepoError(err)
	}
	return event.CloneAll(records), nil
}

// Get returns a copy of the record with the given ID.
func (s *EventStore) Get(ctx context.Context, id string) (event.Record, error) {
	if s == nil {
		return event.Record{}, fmt.Errorf("EventStore is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.events.GetEvent(ctx, id)
	if err != nil {
		return event.Record{}, mapEventRepoError(err)
	}
	return rec.Clone(), nil
}

// Len returns the number of stored records.
func (s *EventStore) Len(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.events.CountEvents(ctx)
	if err != nil {
		return 0, mapEventRepoError(err)
	}
	return count, nil
}

// Version increases with every successful mutation.
func (s *EventStore) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// reportFailure forwards a failed mutation to the observer. It runs after the
// mutation has released s.mu.
func (s *EventStore) reportFailure(operation string, err error) {
	s.mu.Lock()
	observer := s.observer
	s.mu.Unlock()
	observer.MutationFailed(operation, ErrorKind(err))
}

// committed records a successful mutation. Callers hold s.mu.
func (s *EventStore) committed() {
	s.version++
	s.views.Invalidate()
}

// allocateID draws identifiers until one is unused. Callers hold s.mu, so no
// concurrent Create can claim the same identifier in between.
func (s *EventStore) allocateID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.idGenerator()
		if id == "" {
			continue
		}
		exists, err := s.events.EventExists(ctx, id)
		if err != nil {
			return "", mapEventRepoError(err)
		}
		if !exists {
			return id, nil
		}
	}
	return "", ErrIDUnavailable
}

func mapEventRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
