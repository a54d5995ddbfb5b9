package marketdata

import (
	"context"
	"fmt"
	"strconv"

	"cryptobit/internal/client/coingecko"
	"cryptobit/internal/config"
)

// Service is the typed read-through facade over Cache + the CoinGecko
// client, one method per bucket with its own TTL.
type Service struct {
	Client *coingecko.Client
	Cache  *Cache
	TTL    config.CacheConfig
}

func NewService(client *coingecko.Client, cache *Cache, ttl config.CacheConfig) *Service {
	return &Service{
		Client: client,
		Cache:  cache,
		TTL:    ttl,
	}
}

func (s *Service) SpotPrice(ctx context.Context, coinID string) (float64, error) {
	v, err := s.Cache.Get(ctx, "price:"+coinID, s.TTL.SpotPriceTTL, func(ctx context.Context) (any, error) {
		return s.Client.SpotPrice(ctx, coinID)
	})
	if err != nil {
		return 0, err
	}
	price, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("unexpected cache value for price:%s", coinID)
	}
	return price, nil
}

func (s *Service) Markets(ctx context.Context) ([]coingecko.MarketCoin, error) {
	v, err := s.Cache.Get(ctx, "markets", s.TTL.MarketsTTL, func(ctx context.Context) (any, error) {
		return s.Client.Markets(ctx)
	})
	if err != nil {
		return nil, err
	}
	items, ok := v.([]coingecko.MarketCoin)
	if !ok {
		return nil, fmt.Errorf("unexpected cache value for markets")
	}
	return items, nil
}

func (s *Service) CoinDetail(ctx context.Context, id string) (*coingecko.CoinDetail, error) {
	v, err := s.Cache.Get(ctx, "coin:"+id, s.TTL.CoinDetailTTL, func(ctx context.Context) (any, error) {
		return s.Client.CoinDetail(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	detail, ok := v.(*coingecko.CoinDetail)
	if !ok {
		return nil, fmt.Errorf("unexpected cache value for coin:%s", id)
	}
	return detail, nil
}

func (s *Service) CoinChart(ctx context.Context, id string, period string) ([]coingecko.ChartPoint, error) {
	v, err := s.Cache.Get(ctx, "chart:"+id+":"+period, s.TTL.ChartTTL, func(ctx context.Context) (any, error) {
		return s.Client.CoinChart(ctx, id, period)
	})
	if err != nil {
		return nil, err
	}
	points, ok := v.([]coingecko.ChartPoint)
	if !ok {
		return nil, fmt.Errorf("unexpected cache value for chart:%s:%s", id, period)
	}
	return points, nil
}

func (s *Service) GlobalStats(ctx context.Context) (*coingecko.GlobalStats, error) {
	v, err := s.Cache.Get(ctx, "global", s.TTL.GlobalStatsTTL, func(ctx context.Context) (any, error) {
		return s.Client.GlobalStats(ctx)
	})
	if err != nil {
		return nil, err
	}
	stats, ok := v.(*coingecko.GlobalStats)
	if !ok {
		return nil, fmt.Errorf("unexpected cache value for global")
	}
	return stats, nil
}

func (s *Service) MarketCapChart(ctx context.Context, days int) ([]coingecko.MarketCapPoint, error) {
	v, err := s.Cache.Get(ctx, "mcapchart:"+strconv.Itoa(days), s.TTL.MarketCapChartTTL, func(ctx context.Context) (any, error) {
		return s.Client.MarketCapChart(ctx, days)
	})
	if err != nil {
		return nil, err
	}
	points, ok := v.([]coingecko.MarketCapPoint)
	if !ok {
		return nil, fmt.Errorf("unexpected cache value for mcapchart:%d", days)
	}
	return points, nil
}
