package marketdata

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type entry struct {
	value    any
	storedAt time.Time
}

// Cache is a TTL read-through cache keyed by bucket string. Entries are only
// replaced by successful fetches, never evicted on expiry, so an expired
// value stays around as a stale fallback when the upstream is down.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	Now    func() time.Time
	Logger *zap.Logger
}

func NewCache(logger *zap.Logger) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		Now:     time.Now,
		Logger:  logger,
	}
}

// Get returns the cached value for key when it is younger than ttl, otherwise
// calls fetch. A failed fetch falls back to the previous value regardless of
// its age; with no previous value the fetch error propagates.
//
// The lock is never held across fetch. Two goroutines may refresh the same
// key concurrently; the later store wins, which is harmless for this data.
func (c *Cache) Get(ctx context.Context, key string, ttl time.Duration, fetch func(ctx context.Context) (any, error)) (any, error) {
	now := c.now()

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && now.Sub(cached.storedAt) < ttl {
		return cached.value, nil
	}

	value, err := fetch(ctx)
	if err != nil {
		if ok {
			if c.Logger != nil {
				c.Logger.Warn("upstream fetch failed, serving stale cache",
					zap.String("key", key),
					zap.Duration("age", now.Sub(cached.storedAt)),
					zap.Error(err))
			}
			return cached.value, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = entry{value: value, storedAt: now}
	c.mu.Unlock()

	return value, nil
}

func (c *Cache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
