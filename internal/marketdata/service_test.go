package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"cryptobit/internal/client/coingecko"
	"cryptobit/internal/config"
)

func TestServiceSpotPrice_ReadsThroughCache(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{"bitcoin":{"usd":50000}}`)
	}))
	defer srv.Close()

	md := NewService(
		coingecko.NewClient(srv.Client(), srv.URL),
		NewCache(nil),
		config.CacheConfig{SpotPriceTTL: time.Minute},
	)

	for i := 0; i < 3; i++ {
		price, err := md.SpotPrice(context.Background(), "bitcoin")
		if err != nil {
			t.Fatalf("call %d err=%v", i, err)
		}
		if price != 50000 {
			t.Fatalf("price=%v want=50000", price)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("upstream hits=%d want=1", hits.Load())
	}
}

func TestServiceSpotPrice_StaleFallbackAcrossBuckets(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"bitcoin":{"usd":50000}}`)
	}))
	defer srv.Close()

	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewCache(nil)
	cache.Now = clock.Now
	md := NewService(
		coingecko.NewClient(srv.Client(), srv.URL),
		cache,
		config.CacheConfig{SpotPriceTTL: time.Minute},
	)

	if _, err := md.SpotPrice(context.Background(), "bitcoin"); err != nil {
		t.Fatalf("warmup err=%v", err)
	}

	fail.Store(true)
	clock.Advance(10 * time.Minute)
	price, err := md.SpotPrice(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("err=%v want stale fallback", err)
	}
	if price != 50000 {
		t.Fatalf("price=%v want stale 50000", price)
	}
}
