package testfixtures

import (
	"context"
	"testing"

	"github.com/example/campus-events/internal/persistence"
	"github.com/example/campus-events/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a private in-memory
// SQLite database for integration-style persistence tests.
type SQLiteHarness struct {
	Events persistence.EventRepository
	Name   string

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness opens a fresh in-memory database with the schema applied.
// Callers may optionally invoke Close, but the helper also registers a cleanup
// callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	pool, err := sqlite.OpenMemory(context.Background())
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	harness := &SQLiteHarness{
		Events: sqlite.NewEventRepository(pool),
		Name:   pool.Name(),
		cleanup: func() {
			_ = pool.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
