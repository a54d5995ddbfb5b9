package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUpstreamUnavailable wraps every transport, status and decode failure so
// callers can treat "upstream is down" as one condition.
var ErrUpstreamUnavailable = errors.New("coingecko unavailable")

type Client struct {
	host       string
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(httpClient *http.Client, host string) *Client {
	if host == "" {
		host = "https://api.coingecko.com/api/v3"
	}
	host = strings.TrimRight(host, "/")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		host:       host,
		httpClient: httpClient,
		now:        time.Now,
	}
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.host + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}
	return body, nil
}

// SpotPrice returns the current USD price for a CoinGecko coin id.
func (c *Client) SpotPrice(ctx context.Context, coinID string) (float64, error) {
	if coinID == "" {
		return 0, fmt.Errorf("coin id is required")
	}
	query := url.Values{}
	query.Set("ids", coinID)
	query.Set("vs_currencies", "usd")
	body, err := c.doRequest(ctx, "/simple/price", query)
	if err != nil {
		return 0, err
	}
	var payload map[string]map[string]float64
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("%w: decode price: %v", ErrUpstreamUnavailable, err)
	}
	price, ok := payload[coinID]["usd"]
	if !ok {
		return 0, fmt.Errorf("%w: no usd price for %s", ErrUpstreamUnavailable, coinID)
	}
	return price, nil
}

// Markets returns the top 100 coins by market cap.
func (c *Client) Markets(ctx context.Context) ([]MarketCoin, error) {
	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("order", "market_cap_desc")
	query.Set("per_page", "100")
	query.Set("page", "1")
	query.Set("sparkline", "false")
	body, err := c.doRequest(ctx, "/coins/markets", query)
	if err != nil {
		return nil, err
	}
	var items []MarketCoin
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: decode markets: %v", ErrUpstreamUnavailable, err)
	}
	return items, nil
}

func (c *Client) CoinDetail(ctx context.Context, id string) (*CoinDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("coin id is required")
	}
	query := url.Values{}
	query.Set("localization", "false")
	query.Set("tickers", "false")
	query.Set("market_data", "true")
	query.Set("community_data", "false")
	query.Set("developer_data", "false")
	body, err := c.doRequest(ctx, "/coins/"+url.PathEscape(id), query)
	if err != nil {
		return nil, err
	}
	var detail CoinDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("%w: decode coin detail: %v", ErrUpstreamUnavailable, err)
	}
	return &detail, nil
}

type marketChartPayload struct {
	Prices     [][2]float64 `json:"prices"`
	MarketCaps [][2]float64 `json:"market_caps"`
}

// CoinChart fetches price history for a period and downsamples it to a
// chart-friendly number of points. 1H is served from the 1-day series
// filtered to the trailing hour.
func (c *Client) CoinChart(ctx context.Context, id string, period string) ([]ChartPoint, error) {
	if id == "" {
		return nil, fmt.Errorf("coin id is required")
	}
	days := "1"
	switch period {
	case "1H", "24H":
		days = "1"
	case "7D":
		days = "7"
	case "1M":
		days = "30"
	case "1Y":
		days = "365"
	case "ALL":
		days = "max"
	}

	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("days", days)
	body, err := c.doRequest(ctx, "/coins/"+url.PathEscape(id)+"/market_chart", query)
	if err != nil {
		return nil, err
	}
	var payload marketChartPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode chart: %v", ErrUpstreamUnavailable, err)
	}

	prices := payload.Prices
	if period == "1H" {
		cutoff := float64(c.now().Add(-time.Hour).UnixMilli())
		filtered := prices[:0]
		for _, p := range prices {
			if p[0] >= cutoff {
				filtered = append(filtered, p)
			}
		}
		prices = filtered
	}

	points := make([]ChartPoint, 0, len(prices))
	for _, p := range prices {
		ts := int64(p[0])
		points = append(points, ChartPoint{
			Time:      formatChartLabel(time.UnixMilli(ts), period),
			Price:     p[1],
			Timestamp: ts,
		})
	}

	maxPoints := 60
	switch period {
	case "1H":
		maxPoints = 30
	case "24H":
		maxPoints = 48
	}
	return downsample(points, maxPoints), nil
}

func (c *Client) GlobalStats(ctx context.Context) (*GlobalStats, error) {
	body, err := c.doRequest(ctx, "/global", nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Data struct {
			TotalMarketCap               map[string]float64 `json:"total_market_cap"`
			TotalVolume                  map[string]float64 `json:"total_volume"`
			MarketCapPercentage          map[string]float64 `json:"market_cap_percentage"`
			MarketCapChangePercent24hUSD float64            `json:"market_cap_change_percentage_24h_usd"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode global: %v", ErrUpstreamUnavailable, err)
	}
	return &GlobalStats{
		TotalMarketCap:            payload.Data.TotalMarketCap["usd"],
		TotalVolume:               payload.Data.TotalVolume["usd"],
		MarketCapPercentage:       payload.Data.MarketCapPercentage,
		MarketCapChangePercent24h: payload.Data.MarketCapChangePercent24hUSD,
	}, nil
}

// MarketCapChart estimates total market cap history from BTC's market cap
// series divided by BTC dominance. CoinGecko has no free global-history
// endpoint, so this keeps the chart cheap at one extra request.
func (c *Client) MarketCapChart(ctx context.Context, days int) ([]MarketCapPoint, error) {
	if days <= 0 {
		days = 30
	}
	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("days", fmt.Sprintf("%d", days))
	body, err := c.doRequest(ctx, "/coins/bitcoin/market_chart", query)
	if err != nil {
		return nil, err
	}
	var payload marketChartPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode market caps: %v", ErrUpstreamUnavailable, err)
	}

	global, err := c.GlobalStats(ctx)
	if err != nil {
		return nil, err
	}
	dominance := global.MarketCapPercentage["btc"] / 100
	if dominance <= 0 {
		return nil, fmt.Errorf("%w: btc dominance unavailable", ErrUpstreamUnavailable)
	}

	points := make([]MarketCapPoint, 0, len(payload.MarketCaps))
	for _, p := range payload.MarketCaps {
		ts := int64(p[0])
		points = append(points, MarketCapPoint{
			Date:      time.UnixMilli(ts).Format("2 Jan"),
			Value:     p[1] / dominance,
			Timestamp: ts,
		})
	}
	return downsampleMcap(points, 30), nil
}

func formatChartLabel(t time.Time, period string) string {
	switch period {
	case "1H", "24H":
		return t.Format("15:04")
	case "7D":
		return t.Format("Mon 15")
	case "1M":
		return t.Format("Jan 2")
	case "1Y":
		return t.Format("Jan 06")
	default:
		return t.Format("Jan 2006")
	}
}

// downsample keeps every step-th point plus the final one so the series
// always ends at the latest sample.
func downsample(points []ChartPoint, maxPoints int) []ChartPoint {
	if len(points) <= maxPoints {
		return points
	}
	step := int(math.Ceil(float64(len(points)) / float64(maxPoints)))
	out := make([]ChartPoint, 0, maxPoints+1)
	for i, p := range points {
		if i%step == 0 || i == len(points)-1 {
			out = append(out, p)
		}
	}
	return out
}

func downsampleMcap(points []MarketCapPoint, maxPoints int) []MarketCapPoint {
	if len(points) <= maxPoints {
		return points
	}
	step := int(math.Ceil(float64(len(points)) / float64(maxPoints)))
	out := make([]MarketCapPoint, 0, maxPoints+1)
	for i, p := range points {
		if i%step == 0 || i == len(points)-1 {
			out = append(out, p)
		}
	}
	return out
}
