package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestCache(clock *fakeClock) *Cache {
	cache := NewCache(nil)
	cache.Now = clock.Now
	return cache
}

func TestCache_SingleFetchWithinTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	cache := newTestCache(clock)

	calls := 0
	fetch := func(ctx context.Context) (any, error) {
		calls++
		return 42.0, nil
	}

	for i := 0; i < 5; i++ {
		v, err := cache.Get(context.Background(), "price:bitcoin", time.Minute, fetch)
		if err != nil {
			t.Fatalf("get %d err=%v", i, err)
		}
		if v.(float64) != 42.0 {
			t.Fatalf("value=%v want=42", v)
		}
		clock.Advance(10 * time.Second)
	}
	if calls != 1 {
		t.Fatalf("fetch calls=%d want=1", calls)
	}
}

func TestCache_RefetchAfterExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	cache := newTestCache(clock)

	calls := 0
	fetch := func(ctx context.Context) (any, error) {
		calls++
		return calls, nil
	}

	if _, err := cache.Get(context.Background(), "markets", time.Minute, fetch); err != nil {
		t.Fatalf("err=%v", err)
	}
	clock.Advance(61 * time.Second)
	v, err := cache.Get(context.Background(), "markets", time.Minute, fetch)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if calls != 2 {
		t.Fatalf("fetch calls=%d want=2", calls)
	}
	if v.(int) != 2 {
		t.Fatalf("value=%v want=2 (refreshed)", v)
	}
}

func TestCache_ServesStaleOnFetchError(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	cache := newTestCache(clock)

	upstreamDown := false
	fetch := func(ctx context.Context) (any, error) {
		if upstreamDown {
			return nil, errors.New("status 429")
		}
		return "fresh", nil
	}

	if _, err := cache.Get(context.Background(), "global", time.Minute, fetch); err != nil {
		t.Fatalf("err=%v", err)
	}

	// Well past expiry, upstream dead: the stale value must come back.
	upstreamDown = true
	clock.Advance(time.Hour)
	v, err := cache.Get(context.Background(), "global", time.Minute, fetch)
	if err != nil {
		t.Fatalf("err=%v want stale fallback", err)
	}
	if v.(string) != "fresh" {
		t.Fatalf("value=%v want stale value", v)
	}
}

func TestCache_PropagatesErrorWithNoFallback(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	cache := newTestCache(clock)

	wantErr := errors.New("connection refused")
	_, err := cache.Get(context.Background(), "coin:bitcoin", time.Minute, func(ctx context.Context) (any, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err=%v want=%v", err, wantErr)
	}
}

func TestCache_KeysAreIndependent(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	cache := newTestCache(clock)

	calls := map[string]int{}
	fetchFor := func(key string) func(ctx context.Context) (any, error) {
		return func(ctx context.Context) (any, error) {
			calls[key]++
			return key, nil
		}
	}

	for _, key := range []string{"price:bitcoin", "price:ethereum"} {
		if _, err := cache.Get(context.Background(), key, time.Minute, fetchFor(key)); err != nil {
			t.Fatalf("key=%s err=%v", key, err)
		}
	}
	if calls["price:bitcoin"] != 1 || calls["price:ethereum"] != 1 {
		t.Fatalf("calls=%v want one per key", calls)
	}
}
