package testfixtures

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/example/campus-events/internal/application"
	"github.com/example/campus-events/internal/event"
	"github.com/example/campus-events/internal/persistence"
)

// StoreFactory assists tests with constructing event stores using
// deterministic identifiers and clocks.
type StoreFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// StoreFactoryOption configures a StoreFactory instance.
type StoreFactoryOption func(*StoreFactory)

// NewStoreFactory constructs a StoreFactory with defaults.
func NewStoreFactory(opts ...StoreFactoryOption) *StoreFactory {
	factory := &StoreFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("event"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("event")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) StoreFactoryOption {
	return func(factory *StoreFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) StoreFactoryOption {
	return func(factory *StoreFactory) {
		factory.IDGenerator = generator
	}
}

// EventStoreDeps captures dependencies for constructing an event store. Nil
// fields fall back to the factory defaults, and a nil repository selects
// memory storage.
type EventStoreDeps struct {
	Events      persistence.EventRepository
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewEventStore builds an event store using the supplied dependencies combined
// with the factory defaults.
func (f *StoreFactory) NewEventStore(deps EventStoreDeps) *application.EventStore {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewEventStoreWithLogger(deps.Events, idGen, now, deps.Logger)
}

// Seed creates every input in order, failing the test on the first error. The
// returned records are in creation order, the reverse of List order.
func Seed(tb testing.TB, store *application.EventStore, inputs ...event.Input) []event.Record {
	tb.Helper()

	created := make([]event.Record, 0, len(inputs))
	for _, input := range inputs {
		rec, err := store.Create(context.Background(), input)
		if err != nil {
			tb.Fatalf("failed to seed %q: %v", input.Title, err)
		}
		created = append(created, rec)
	}
	return created
}
