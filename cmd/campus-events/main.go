package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/example/campus-events/internal/application"
	"github.com/example/campus-events/internal/config"
	"github.com/example/campus-events/internal/event"
	"github.com/example/campus-events/internal/freshness"
	"github.com/example/campus-events/internal/logging"
	"github.com/example/campus-events/internal/metrics"
	"github.com/example/campus-events/internal/notification"
	"github.com/example/campus-events/internal/persistence"
	"github.com/example/campus-events/internal/persistence/memory"
	"github.com/example/campus-events/internal/persistence/sqlite"
	"github.com/example/campus-events/internal/query"
)

//go:embed seed.yaml
var defaultSeed []byte

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	if err := run(logging.ContextWithLogger(ctx, logger), cfg, os.Stdout, logger); err != nil {
		logger.Error("campus events report failed", "error", err)
		os.Exit(1)
	}
}

// run seeds a store according to cfg and writes the dashboard report to out.
func run(ctx context.Context, cfg config.Config, out io.Writer, logger *slog.Logger) error {
	repo, closeRepo, err := openRepository(ctx, cfg.Backend)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeRepo(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	clock := cfg.Clock()
	store := application.NewEventStoreWithLogger(repo, nil, clock, logger)
	store.SetObserver(collector)
	store.ConfigureViewCache(cfg.ViewCacheTTL, 0)

	inputs, err := loadSeed(cfg.SeedFile)
	if err != nil {
		return err
	}
	for _, input := range inputs {
		if _, err := store.Create(ctx, input); err != nil {
			return fmt.Errorf("seed %q: %w", input.Title, err)
		}
	}
	stored, err := store.Len(ctx)
	if err != nil {
		return fmt.Errorf("count events: %w", err)
	}
	collector.SetStored(stored)
	logger.InfoContext(ctx, "store seeded", "backend", cfg.Backend, "events", stored)

	now := clock()
	dashboard, err := store.Dashboard(ctx, now, cfg.UpcomingLimit)
	if err != nil {
		return fmt.Errorf("build dashboard: %w", err)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(newReport(cfg.Backend, dashboard)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	logMetrics(ctx, logger, registry)
	return nil
}

func openRepository(ctx context.Context, backend config.Backend) (persistence.EventRepository, func() error, error) {
	switch backend {
	case config.BackendSQLite:
		repo, err := sqlite.Open(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return repo, repo.Close, nil
	case config.BackendMemory, "":
		storage := memory.NewStorage()
		return storage, storage.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

func loadSeed(path string) ([]event.Input, error) {
	if path == "" {
		return config.ParseSeed(defaultSeed)
	}
	return config.LoadSeed(path)
}

func logMetrics(ctx context.Context, logger *slog.Logger, gatherer prometheus.Gatherer) {
	families, err := gatherer.Gather()
	if err != nil {
		logger.WarnContext(ctx, "failed to gather metrics", "error", err)
		return
	}
	for _, family := range families {
		var total float64
		for _, m := range family.GetMetric() {
			total += m.GetCounter().GetValue() + m.GetGauge().GetValue()
		}
		logger.DebugContext(ctx, "metric", "name", family.GetName(), "series", len(family.GetMetric()), "value", total)
	}
}

type report struct {
	GeneratedAt   string                `json:"generated_at"`
	Backend       config.Backend        `json:"backend"`
	Version       uint64                `json:"version"`
	Stats         query.Stats           `json:"stats"`
	Upcoming      []upcomingItem        `json:"upcoming"`
	Categories    []query.CategoryCount `json:"categories"`
	Notifications notificationSection   `json:"notifications"`
}

type upcomingItem struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Date     string          `json:"date"`
	Time     string          `json:"time"`
	Category event.Category  `json:"category"`
	Location string          `json:"location"`
	Badge    freshness.Badge `json:"badge,omitempty"`
}

type notificationSection struct {
	Counts  notification.Counts `json:"counts"`
	Entries []notificationItem  `json:"entries"`
}

type notificationItem struct {
	notification.Entry
	Relative string `json:"relative"`
}

func newReport(backend config.Backend, d application.Dashboard) report {
	r := report{
		GeneratedAt: d.Now.Format("2006-01-02T15:04:05Z07:00"),
		Backend:     backend,
		Version:     d.Version,
		Stats:       d.Stats,
		Upcoming:    make([]upcomingItem, 0, len(d.Upcoming)),
		Categories:  d.Categories,
		Notifications: notificationSection{
			Counts:  d.Feed.Counts(),
			Entries: make([]notificationItem, 0, len(d.Feed)),
		},
	}
	for _, rec := range d.Upcoming {
		r.Upcoming = append(r.Upcoming, upcomingItem{
			ID:       rec.ID,
			Title:    rec.Title,
			Date:     rec.Date.String(),
			Time:     rec.Time.String(),
			Category: rec.Category,
			Location: rec.Location,
			Badge:    freshness.Classify(rec, d.Now),
		})
	}
	for _, entry := range d.Feed {
		r.Notifications.Entries = append(r.Notifications.Entries, notificationItem{
			Entry:    entry,
			Relative: freshness.RelativeLabel(entry.Timestamp, d.Now),
		})
	}
	return r
}
