package application

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/example/campus-events/internal/event"
	"github.com/example/campus-events/internal/notification"
	"github.com/example/campus-events/internal/query"
)

const (
	defaultViewCacheTTL     = 30 * time.Second
	defaultViewCacheEntries = 128
)

// viewCache stores recently computed dashboards so repeated reads against an
// unchanged collection skip recomputation. Keys embed the store version, so a
// stale entry can never be served for a newer collection.
type viewCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]viewCacheEntry
}

type viewCacheEntry struct {
	dashboard Dashboard
	expiresAt time.Time
}

func newViewCache(ttl time.Duration, maxEntries int, now func() time.Time) *viewCache {
	if ttl <= 0 {
		ttl = defaultViewCacheTTL
	}
	if maxEntries <= 0 {
		maxEntries = defaultViewCacheEntries
	}
	if now == nil {
		now = time.Now
	}
	return &viewCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]viewCacheEntry),
	}
}

func (c *viewCache) Get(key string) (Dashboard, bool) {
	if c == nil {
		return Dashboard{}, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return Dashboard{}, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return Dashboard{}, false
	}
	return cloneDashboard(entry.dashboard), true
}

func (c *viewCache) Store(key string, dashboard Dashboard) {
	if c == nil {
		return
	}
	cloned := cloneDashboard(dashboard)
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = viewCacheEntry{dashboard: cloned, expiresAt: expiry}
}

func (c *viewCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]viewCacheEntry)
	c.mu.Unlock()
}

func (c *viewCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *viewCache) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *viewCache) evictOneLocked() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for key, entry := range c.entries {
		if oldestKey == "" || entry.expiresAt.Before(oldest) {
			oldestKey = key
			oldest = entry.expiresAt
		}
	}
	delete(c.entries, oldestKey)
}

func cloneDashboard(d Dashboard) Dashboard {
	out := d
	out.Upcoming = event.CloneAll(d.Upcoming)
	if d.Categories != nil {
		out.Categories = make([]query.CategoryCount, len(d.Categories))
		copy(out.Categories, d.Categories)
	}
	if d.Feed != nil {
		out.Feed = make(notification.Feed, len(d.Feed))
		copy(out.Feed, d.Feed)
	}
	return out
}

func buildViewCacheKey(version uint64, now time.Time, upcomingLimit int) string {
	builder := strings.Builder{}
	builder.WriteString(strconv.FormatUint(version, 10))
	builder.WriteString("|")
	builder.WriteString(now.Format(time.RFC3339Nano))
	builder.WriteString("|")
	builder.WriteString(now.Location().String())
	builder.WriteString("|")
	builder.WriteString(strconv.Itoa(upcomingLimit))
	return builder.String()
}
