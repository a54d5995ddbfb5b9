package service

import (
	"context"

	"go.uber.org/zap"

	"cryptobit/internal/client/coingecko"
	"cryptobit/internal/marketdata"
	"cryptobit/internal/models"
)

// LivePrices resolves a best-effort pair→price map for the given signals.
// One markets-bucket read covers most pairs; anything the listing misses
// falls back to per-coin spot lookups. Failures leave pairs out of the map.
func LivePrices(ctx context.Context, md *marketdata.Service, logger *zap.Logger, signals []models.Signal) map[string]float64 {
	prices := make(map[string]float64, len(signals))
	if md == nil {
		return prices
	}

	byID := map[string]float64{}
	markets, err := md.Markets(ctx)
	if err != nil {
		if logger != nil {
			logger.Warn("markets listing unavailable for live prices", zap.Error(err))
		}
	} else {
		for _, m := range markets {
			byID[m.ID] = m.CurrentPrice
		}
	}

	for i := range signals {
		sig := &signals[i]
		if _, ok := prices[sig.Pair]; ok {
			continue
		}
		coinID := sig.CoinID
		if coinID == "" {
			id, ok := coingecko.CoinIDFromPair(sig.Pair)
			if !ok {
				continue
			}
			coinID = id
		}
		if price, ok := byID[coinID]; ok {
			prices[sig.Pair] = price
			continue
		}
		price, err := md.SpotPrice(ctx, coinID)
		if err != nil {
			continue
		}
		prices[sig.Pair] = price
	}
	return prices
}
