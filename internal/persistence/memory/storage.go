package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/campus-events/internal/event"
	"github.com/example/campus-events/internal/persistence"
)

// Storage provides an in-process persistence layer for event records.
type Storage struct {
	mu     sync.RWMutex
	events map[string]event.Record
	// order holds record IDs, most recently inserted first.
	order []string
}

// NewStorage returns an empty Storage.
func NewStorage() *Storage {
	return &Storage{events: make(map[string]event.Record)}
}

// Close releases resources held by the storage. No-op for the in-memory implementation.
func (s *Storage) Close() error {
	return nil
}

// InsertEvent stores a new record at the front of the retrieval order.
func (s *Storage) InsertEvent(ctx context.Context, rec event.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[rec.ID]; ok {
		return fmt.Errorf("memory: event %s: %w", rec.ID, persistence.ErrDuplicate)
	}

	s.events[rec.ID] = rec.Clone()
	s.order = append([]string{rec.ID}, s.order...)
	return nil
}

// ReplaceEvent overwrites an existing record in place, keeping its position.
func (s *Storage) ReplaceEvent(ctx context.Context, rec event.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[rec.ID]; !ok {
		return persistence.ErrNotFound
	}

	s.events[rec.ID] = rec.Clone()
	return nil
}

// GetEvent retrieves a record by ID.
func (s *Storage) GetEvent(ctx context.Context, id string) (event.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.events[id]
	if !ok {
		return event.Record{}, persistence.ErrNotFound
	}
	return rec.Clone(), nil
}

// EventExists reports whether a record with the ID is stored.
func (s *Storage) EventExists(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.events[id]
	return ok, nil
}

// ListEvents returns all records, most recently inserted first.
func (s *Storage) ListEvents(ctx context.Context) ([]event.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]event.Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.events[id].Clone())
	}
	return out, nil
}

// CountEvents returns the number of stored records.
func (s *Storage) CountEvents(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order), nil
}
