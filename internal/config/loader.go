package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/example/campus-events/internal/logging"
)

// Backend selects the event repository implementation.
type Backend string

const (
	// BackendMemory keeps events in process memory.
	BackendMemory Backend = "memory"
	// BackendSQLite keeps events in a private in-memory SQLite database.
	BackendSQLite Backend = "sqlite"
)

// Config captures environment driven configuration values for the campus events host.
type Config struct {
	Backend       Backend
	SeedFile      string
	Location      *time.Location
	LogLevel      slog.Level
	UpcomingLimit int
	ViewCacheTTL  time.Duration
	// Now pins the reference time when set; otherwise the wall clock is used.
	Now time.Time
}

// Load parses configuration values from the current process environment.
//
// Optional values fall back to defaults. Every malformed value is reported in
// a single error naming the offending variables.
func Load() (Config, error) {
	cfg := Config{
		Backend:       BackendMemory,
		Location:      time.UTC,
		LogLevel:      slog.LevelInfo,
		UpcomingLimit: 5,
		ViewCacheTTL:  30 * time.Second,
	}

	invalid := make([]string, 0, 2)

	if backendValue := strings.TrimSpace(os.Getenv("CAMPUS_STORE_BACKEND")); backendValue != "" {
		switch Backend(strings.ToLower(backendValue)) {
		case BackendMemory:
			cfg.Backend = BackendMemory
		case BackendSQLite:
			cfg.Backend = BackendSQLite
		default:
			invalid = append(invalid, "CAMPUS_STORE_BACKEND")
		}
	}

	cfg.SeedFile = strings.TrimSpace(os.Getenv("CAMPUS_SEED_FILE"))

	if zone := strings.TrimSpace(os.Getenv("CAMPUS_TIMEZONE")); zone != "" {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			invalid = append(invalid, "CAMPUS_TIMEZONE")
		} else {
			cfg.Location = loc
		}
	}

	if levelValue := strings.TrimSpace(os.Getenv("CAMPUS_LOG_LEVEL")); levelValue != "" {
		level, err := logging.ParseLevel(levelValue)
		if err != nil {
			invalid = append(invalid, "CAMPUS_LOG_LEVEL")
		} else {
			cfg.LogLevel = level
		}
	}

	if limitValue := strings.TrimSpace(os.Getenv("CAMPUS_UPCOMING_LIMIT")); limitValue != "" {
		limit, err := strconv.Atoi(limitValue)
		if err != nil || limit <= 0 {
			invalid = append(invalid, "CAMPUS_UPCOMING_LIMIT")
		} else {
			cfg.UpcomingLimit = limit
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("CAMPUS_VIEW_CACHE_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "CAMPUS_VIEW_CACHE_TTL")
		} else {
			cfg.ViewCacheTTL = ttl
		}
	}

	if nowValue := strings.TrimSpace(os.Getenv("CAMPUS_NOW")); nowValue != "" {
		now, err := time.Parse(time.RFC3339, nowValue)
		if err != nil {
			invalid = append(invalid, "CAMPUS_NOW")
		} else {
			cfg.Now = now
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// Clock returns the reference time source, expressed in the configured location.
func (c Config) Clock() func() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	if !c.Now.IsZero() {
		pinned := c.Now.In(loc)
		return func() time.Time { return pinned }
	}
	return func() time.Time { return time.Now().In(loc) }
}
