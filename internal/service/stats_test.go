package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"cryptobit/internal/models"
)

func closedSignal(status, direction, entry, sl, tps string) models.Signal {
	return models.Signal{
		Pair:        "BTC/USDT",
		Direction:   direction,
		Entry:       decimal.RequireFromString(entry),
		StopLoss:    decimal.RequireFromString(sl),
		TakeProfits: tps,
		Status:      status,
	}
}

func TestComputeSignalStats_NoClosedTrades(t *testing.T) {
	signals := []models.Signal{
		closedSignal(models.SignalStatusActive, models.DirectionLong, "100", "95", "110"),
		closedSignal(models.SignalStatusActive, models.DirectionShort, "200", "210", "180"),
	}
	stats := ComputeSignalStats(signals)
	if stats.TotalTrades != 2 {
		t.Fatalf("totalTrades=%d want=2", stats.TotalTrades)
	}
	if stats.ClosedTrades != 0 {
		t.Fatalf("closedTrades=%d want=0", stats.ClosedTrades)
	}
	if stats.WinRate != 0 {
		t.Fatalf("winRate=%v want=0", stats.WinRate)
	}
}

func TestComputeSignalStats_WinRate(t *testing.T) {
	signals := []models.Signal{
		closedSignal(models.SignalStatusHit, models.DirectionLong, "100", "95", "110"),
		closedSignal(models.SignalStatusHit, models.DirectionLong, "100", "95", "110"),
		closedSignal(models.SignalStatusHit, models.DirectionLong, "100", "95", "110"),
		closedSignal(models.SignalStatusSL, models.DirectionLong, "100", "95", "110"),
		closedSignal(models.SignalStatusActive, models.DirectionLong, "100", "95", "110"),
	}
	stats := ComputeSignalStats(signals)
	if stats.TotalTrades != 5 {
		t.Fatalf("totalTrades=%d want=5", stats.TotalTrades)
	}
	if stats.ClosedTrades != 4 {
		t.Fatalf("closedTrades=%d want=4", stats.ClosedTrades)
	}
	if stats.WinRate != 75.0 {
		t.Fatalf("winRate=%v want=75.0", stats.WinRate)
	}
}

func TestComputeSignalStats_StoppedCountsAsLoss(t *testing.T) {
	signals := []models.Signal{
		closedSignal(models.SignalStatusHit, models.DirectionLong, "100", "95", "110"),
		closedSignal(models.SignalStatusStopped, models.DirectionLong, "100", "95", "110"),
	}
	stats := ComputeSignalStats(signals)
	if stats.ClosedTrades != 2 {
		t.Fatalf("closedTrades=%d want=2", stats.ClosedTrades)
	}
	if stats.WinRate != 50.0 {
		t.Fatalf("winRate=%v want=50.0", stats.WinRate)
	}
	if stats.TotalLossPercent != 5.0 {
		t.Fatalf("totalLossPercent=%v want=5.0 (derived from entry/stop-loss)", stats.TotalLossPercent)
	}
}

func TestComputeSignalStats_StoredPercentPreferred(t *testing.T) {
	win := closedSignal(models.SignalStatusHit, models.DirectionLong, "100", "95", "110")
	stored := decimal.RequireFromString("12.5")
	win.ProfitPercent = &stored

	stats := ComputeSignalStats([]models.Signal{win})
	if stats.TotalProfitPercent != 12.5 {
		t.Fatalf("totalProfitPercent=%v want=12.5 (stored value)", stats.TotalProfitPercent)
	}
}

func TestComputeSignalStats_FallbackDerivation(t *testing.T) {
	// Stored zero percent must be ignored in favor of the derived value.
	win := closedSignal(models.SignalStatusHit, models.DirectionLong, "100", "95", "110,120")
	zero := decimal.Zero
	win.ProfitPercent = &zero
	loss := closedSignal(models.SignalStatusSL, models.DirectionShort, "100", "105", "90")

	stats := ComputeSignalStats([]models.Signal{win, loss})
	if stats.TotalProfitPercent != 10.0 {
		t.Fatalf("totalProfitPercent=%v want=10.0 (derived from first take-profit)", stats.TotalProfitPercent)
	}
	if stats.TotalLossPercent != 5.0 {
		t.Fatalf("totalLossPercent=%v want=5.0 (derived from stop-loss)", stats.TotalLossPercent)
	}
}

func TestComputeSignalStats_RoundsToOneDecimal(t *testing.T) {
	signals := []models.Signal{
		closedSignal(models.SignalStatusHit, models.DirectionLong, "100", "95", "110"),
		closedSignal(models.SignalStatusSL, models.DirectionLong, "100", "95", "110"),
		closedSignal(models.SignalStatusSL, models.DirectionLong, "100", "95", "110"),
	}
	stats := ComputeSignalStats(signals)
	// 1/3 closed won: 33.333... rounds to 33.3.
	if stats.WinRate != 33.3 {
		t.Fatalf("winRate=%v want=33.3", stats.WinRate)
	}
}
