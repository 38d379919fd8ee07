// Package metrics exposes event store activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/example/campus-events/internal/event"
)

const namespace = "campus_events"

// Collector records store mutations. It satisfies application.Observer.
type Collector struct {
	created      prometheus.Counter
	updated      prometheus.Counter
	failures     *prometheus.CounterVec
	stored       prometheus.Gauge
	attendance   *prometheus.CounterVec
	lastMutation prometheus.Gauge
}

// NewCollector builds the metrics and registers them with reg. A nil reg
// selects the default registerer.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{}
	c.created = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Number of events created",
	})
	c.updated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "updated_total",
		Help:      "Number of events updated",
	})
	c.failures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutation_failures_total",
		Help:      "Number of rejected mutations by operation and error kind",
	}, []string{"operation", "kind"})
	c.stored = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stored",
		Help:      "Number of events held by the store",
	})
	c.attendance = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_attendance_total",
		Help:      "Expected attendance of created events by category",
	}, []string{"category"})
	c.lastMutation = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_mutation_timestamp_seconds",
		Help:      "Unix timestamp of the last successful mutation",
	})

	reg.MustRegister(
		c.created, c.updated, c.failures,
		c.stored, c.attendance, c.lastMutation,
	)
	return c
}

// EventCreated counts a successful create.
func (c *Collector) EventCreated(rec event.Record) {
	c.created.Inc()
	c.stored.Inc()
	c.attendance.WithLabelValues(string(rec.Category)).Add(float64(rec.Attendance))
	c.lastMutation.Set(float64(rec.CreatedAt.Unix()))
}

// EventUpdated counts a successful update.
func (c *Collector) EventUpdated(rec event.Record) {
	c.updated.Inc()
	if rec.UpdatedAt != nil {
		c.lastMutation.Set(float64(rec.UpdatedAt.Unix()))
	}
}

// MutationFailed counts a rejected create or update.
func (c *Collector) MutationFailed(operation, kind string) {
	c.failures.WithLabelValues(operation, kind).Inc()
}

// SetStored overwrites the stored gauge with the authoritative record count,
// e.g. after attaching to a store that already holds records.
func (c *Collector) SetStored(n int) {
	c.stored.Set(float64(n))
}
