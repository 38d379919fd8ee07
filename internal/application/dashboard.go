package application

import (
	"context"
	"fmt"
	"time"

	"github.com/example/campus-events/internal/event"
	"github.com/example/campus-events/internal/notification"
	"github.com/example/campus-events/internal/query"
)

// Dashboard bundles the derived views computed from one snapshot.
type Dashboard struct {
	Version    uint64                `json:"version"`
	Now        time.Time             `json:"now"`
	Stats      query.Stats           `json:"stats"`
	Upcoming   []event.Record        `json:"upcoming"`
	Categories []query.CategoryCount `json:"categories"`
	Feed       notification.Feed     `json:"feed"`
}

// BuildDashboard derives every dashboard view from snapshot relative to now.
// It is a pure function of its arguments.
func BuildDashboard(snapshot []event.Record, now time.Time, upcomingLimit int) Dashboard {
	return Dashboard{
		Now:        now,
		Stats:      query.AggregateStats(snapshot, now),
		Upcoming:   event.CloneAll(query.UpcomingOrdered(snapshot, now, upcomingLimit)),
		Categories: query.CategoryBreakdown(snapshot),
		Feed:       notification.Synthesize(snapshot, now),
	}
}

// Dashboard returns the derived views for the current collection. Results are
// memoized per store version, reference time and limit.
func (s *EventStore) Dashboard(ctx context.Context, now time.Time, upcomingLimit int) (Dashboard, error) {
	if s == nil {
		return Dashboard{}, fmt.Errorf("EventStore is nil")
	}

	s.mu.Lock()
	version := s.version
	views := s.views
	key := buildViewCacheKey(version, now, upcomingLimit)
	if cached, ok := views.Get(key); ok {
		s.mu.Unlock()
		s.loggerWith(ctx, "Dashboard").DebugContext(ctx, "dashboard served from cache", "version", version)
		return cached, nil
	}
	records, err := s.events.ListEvents(ctx)
	s.mu.Unlock()
	if err != nil {
		return Dashboard{}, mapEventRepoError(err)
	}

	dashboard := BuildDashboard(records, now, upcomingLimit)
	dashboard.Version = version
	views.Store(key, dashboard)
	return dashboard, nil
}
