package metrics_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/example/campus-events/internal/application"
	"github.com/example/campus-events/internal/event"
	"github.com/example/campus-events/internal/metrics"
	"github.com/example/campus-events/internal/testfixtures"
)

var _ application.Observer = (*metrics.Collector)(nil)

func TestCollectorTracksStoreMutations(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	factory := testfixtures.NewStoreFactory()
	store := factory.NewEventStore(testfixtures.EventStoreDeps{
		Now: factory.Clock.SteppingFunc(time.Minute),
	})
	store.SetObserver(collector)
	ctx := context.Background()

	created := testfixtures.Seed(t, store, testfixtures.SeedInputs()...)

	factory.Clock.Advance(time.Hour)
	edit := created[0]
	edit.Title = "Tech Innovation Summit 2025 (rescheduled)"
	if _, err := store.Update(ctx, edit); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err := store.Update(ctx, event.Record{ID: "missing"}); err == nil {
		t.Fatalf("expected update of unknown event to fail")
	}
	if _, err := store.Create(ctx, event.Input{}); err == nil {
		t.Fatalf("expected invalid create to fail")
	}

	expected := `
# HELP campus_events_created_total Number of events created
# TYPE campus_events_created_total counter
campus_events_created_total 4
# HELP campus_events_mutation_failures_total Number of rejected mutations by operation and error kind
# TYPE campus_events_mutation_failures_total counter
campus_events_mutation_failures_total{kind="not_found",operation="update"} 1
campus_events_mutation_failures_total{kind="validation",operation="create"} 1
# HELP campus_events_stored Number of events held by the store
# TYPE campus_events_stored gauge
campus_events_stored 4
# HELP campus_events_updated_total Number of events updated
# TYPE campus_events_updated_total counter
campus_events_updated_total 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"campus_events_created_total",
		"campus_events_updated_total",
		"campus_events_mutation_failures_total",
		"campus_events_stored",
	); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}

	// Four creates stepped the clock by a minute each, then it advanced an
	// hour before the update read it.
	wantTS := float64(testfixtures.ReferenceTime().Add(time.Hour + 4*time.Minute).Unix())
	if got := gaugeValue(t, reg, "campus_events_last_mutation_timestamp_seconds"); got != wantTS {
		t.Fatalf("expected last mutation %v, got %v", wantTS, got)
	}

	collector.SetStored(10)
	if got := gaugeValue(t, reg, "campus_events_stored"); got != 10 {
		t.Fatalf("expected stored gauge 10, got %v", got)
	}
}

func TestCollectorCountsExhaustedIdentifiers(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	factory := testfixtures.NewStoreFactory()
	store := factory.NewEventStore(testfixtures.EventStoreDeps{
		IDGenerator: testfixtures.Sequence("evt-1"),
	})
	store.SetObserver(collector)

	testfixtures.Seed(t, store, testfixtures.NewEventFixture().Input())
	if _, err := store.Create(context.Background(), testfixtures.NewEventFixture().Input()); !errors.Is(err, application.ErrIDUnavailable) {
		t.Fatalf("expected ErrIDUnavailable, got %v", err)
	}

	expected := `
# HELP campus_events_mutation_failures_total Number of rejected mutations by operation and error kind
# TYPE campus_events_mutation_failures_total counter
campus_events_mutation_failures_total{kind="id_unavailable",operation="create"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "campus_events_mutation_failures_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}

func gaugeValue(t *testing.T, gatherer prometheus.Gatherer, name string) float64 {
	t.Helper()
	families, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, family := range families {
		if family.GetName() == name && len(family.GetMetric()) == 1 {
			return family.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestCollectorAttendanceByCategory(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	collector.EventCreated(testfixtures.NewEventFixture(
		testfixtures.WithEventCategory(event.CategoryWorkshop),
		testfixtures.WithEventAttendance(80),
	).Record())
	collector.EventCreated(testfixtures.NewEventFixture(
		testfixtures.WithEventCategory(event.CategoryWorkshop),
		testfixtures.WithEventAttendance(20),
	).Record())

	if got, err := testutil.GatherAndCount(reg, "campus_events_created_attendance_total"); err != nil || got != 1 {
		t.Fatalf("expected one attendance series, got %d (err=%v)", got, err)
	}
	expected := `
# HELP campus_events_created_attendance_total Expected attendance of created events by category
# TYPE campus_events_created_attendance_total counter
campus_events_created_attendance_total{category="workshop"} 100
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "campus_events_created_attendance_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}
