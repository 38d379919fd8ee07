package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"CAMPUS_STORE_BACKEND",
	"CAMPUS_SEED_FILE",
	"CAMPUS_TIMEZONE",
	"CAMPUS_LOG_LEVEL",
	"CAMPUS_UPCOMING_LIMIT",
	"CAMPUS_VIEW_CACHE_TTL",
	"CAMPUS_NOW",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoader_ParseEnvironment(t *testing.T) {
	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.Backend != BackendMemory {
			t.Fatalf("expected memory backend, got %q", cfg.Backend)
		}
		if cfg.Location != time.UTC {
			t.Fatalf("expected UTC, got %v", cfg.Location)
		}
		if cfg.LogLevel != slog.LevelInfo {
			t.Fatalf("expected info level, got %v", cfg.LogLevel)
		}
		if cfg.UpcomingLimit != 5 {
			t.Fatalf("expected upcoming limit 5, got %d", cfg.UpcomingLimit)
		}
		if cfg.ViewCacheTTL != 30*time.Second {
			t.Fatalf("expected 30s cache TTL, got %v", cfg.ViewCacheTTL)
		}
		if cfg.SeedFile != "" || !cfg.Now.IsZero() {
			t.Fatalf("expected no seed file and no pinned time, got %q and %v", cfg.SeedFile, cfg.Now)
		}
	})

	t.Run("reads overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CAMPUS_STORE_BACKEND", "SQLite")
		t.Setenv("CAMPUS_SEED_FILE", " /tmp/seed.yaml ")
		t.Setenv("CAMPUS_TIMEZONE", "Asia/Kolkata")
		t.Setenv("CAMPUS_LOG_LEVEL", "debug")
		t.Setenv("CAMPUS_UPCOMING_LIMIT", "3")
		t.Setenv("CAMPUS_VIEW_CACHE_TTL", "2m")
		t.Setenv("CAMPUS_NOW", "2025-01-10T09:00:00Z")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.Backend != BackendSQLite {
			t.Fatalf("expected sqlite backend, got %q", cfg.Backend)
		}
		if cfg.SeedFile != "/tmp/seed.yaml" {
			t.Fatalf("unexpected seed file %q", cfg.SeedFile)
		}
		if cfg.Location.String() != "Asia/Kolkata" {
			t.Fatalf("unexpected location %v", cfg.Location)
		}
		if cfg.LogLevel != slog.LevelDebug || cfg.UpcomingLimit != 3 || cfg.ViewCacheTTL != 2*time.Minute {
			t.Fatalf("unexpected config: %#v", cfg)
		}

		now := cfg.Clock()()
		if !now.Equal(time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC)) {
			t.Fatalf("expected pinned time, got %v", now)
		}
		if now.Location().String() != "Asia/Kolkata" {
			t.Fatalf("expected clock in configured location, got %v", now.Location())
		}
	})

	t.Run("reports every invalid value", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CAMPUS_STORE_BACKEND", "postgres")
		t.Setenv("CAMPUS_TIMEZONE", "Mars/Olympus")
		t.Setenv("CAMPUS_LOG_LEVEL", "loud")
		t.Setenv("CAMPUS_UPCOMING_LIMIT", "0")
		t.Setenv("CAMPUS_VIEW_CACHE_TTL", "soon")
		t.Setenv("CAMPUS_NOW", "yesterday")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for invalid values")
		}
		for _, key := range envKeys {
			if key == "CAMPUS_SEED_FILE" {
				continue
			}
			if !strings.Contains(err.Error(), key) {
				t.Fatalf("expected %s in error, got %q", key, err.Error())
			}
		}
	})
}

func TestConfigClockUsesWallTimeByDefault(t *testing.T) {
	cfg := Config{}
	before := time.Now()
	now := cfg.Clock()()
	if now.Before(before) || now.Location() != time.UTC {
		t.Fatalf("expected current UTC time, got %v", now)
	}
}
