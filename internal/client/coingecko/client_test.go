package coingecko

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSpotPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Fatalf("path=%s want=/simple/price", r.URL.Path)
		}
		if got := r.URL.Query().Get("ids"); got != "bitcoin" {
			t.Fatalf("ids=%s want=bitcoin", got)
		}
		fmt.Fprint(w, `{"bitcoin":{"usd":64123.5}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	price, err := c.SpotPrice(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if price != 64123.5 {
		t.Fatalf("price=%v want=64123.5", price)
	}
}

func TestSpotPrice_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	_, err := c.SpotPrice(context.Background(), "bitcoin")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("err=%v want ErrUpstreamUnavailable", err)
	}
}

func TestSpotPrice_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>rate limited</html>`)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	_, err := c.SpotPrice(context.Background(), "bitcoin")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("err=%v want ErrUpstreamUnavailable", err)
	}
}

func TestCoinChart_DownsamplesAndKeepsLastPoint(t *testing.T) {
	base := time.Now().Add(-24 * time.Hour).UnixMilli()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("days"); got != "1" {
			t.Fatalf("days=%s want=1", got)
		}
		fmt.Fprint(w, `{"prices":[`)
		for i := 0; i < 288; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `[%d,%d]`, base+int64(i)*5*60*1000, 100+i)
		}
		fmt.Fprint(w, `]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	points, err := c.CoinChart(context.Background(), "bitcoin", "24H")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(points) > 49 {
		t.Fatalf("points=%d want<=49", len(points))
	}
	last := points[len(points)-1]
	if last.Price != 100+287 {
		t.Fatalf("last price=%v want=%v (final sample kept)", last.Price, 100+287)
	}
}

func TestCoinChart_OneHourFiltersToTrailingHour(t *testing.T) {
	now := time.Now()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		old := now.Add(-3 * time.Hour).UnixMilli()
		recent := now.Add(-10 * time.Minute).UnixMilli()
		fmt.Fprintf(w, `{"prices":[[%d,50],[%d,60]]}`, old, recent)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	points, err := c.CoinChart(context.Background(), "bitcoin", "1H")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(points) != 1 {
		t.Fatalf("points=%d want=1 (older samples filtered)", len(points))
	}
	if points[0].Price != 60 {
		t.Fatalf("price=%v want=60", points[0].Price)
	}
}

func TestGlobalStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{
			"total_market_cap":{"usd":2500000000000},
			"total_volume":{"usd":90000000000},
			"market_cap_percentage":{"btc":52.1,"eth":17.4},
			"market_cap_change_percentage_24h_usd":-1.2
		}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	stats, err := c.GlobalStats(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if stats.TotalMarketCap != 2.5e12 {
		t.Fatalf("totalMarketCap=%v want=2.5e12", stats.TotalMarketCap)
	}
	if stats.MarketCapPercentage["btc"] != 52.1 {
		t.Fatalf("btc dominance=%v want=52.1", stats.MarketCapPercentage["btc"])
	}
}

func TestMarketCapChart_ScalesByDominance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/coins/bitcoin/market_chart":
			fmt.Fprint(w, `{"market_caps":[[1700000000000,1000],[1700000100000,1100]]}`)
		case "/global":
			fmt.Fprint(w, `{"data":{
				"total_market_cap":{"usd":1},
				"total_volume":{"usd":1},
				"market_cap_percentage":{"btc":50},
				"market_cap_change_percentage_24h_usd":0
			}}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	points, err := c.MarketCapChart(context.Background(), 30)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(points) != 2 {
		t.Fatalf("points=%d want=2", len(points))
	}
	// BTC cap 1000 at 50% dominance estimates a 2000 total.
	if points[0].Value != 2000 {
		t.Fatalf("value=%v want=2000", points[0].Value)
	}
}
