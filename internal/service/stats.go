package service

import (
	"math"

	"cryptobit/internal/models"
)

// SignalStats is the aggregate performance summary over the full signal set.
type SignalStats struct {
	TotalTrades        int     `json:"totalTrades"`
	ClosedTrades       int     `json:"closedTrades"`
	WinRate            float64 `json:"winRate"`
	TotalProfitPercent float64 `json:"totalProfitPercent"`
	TotalLossPercent   float64 `json:"totalLossPercent"`
}

// ComputeSignalStats aggregates win rate and cumulative profit/loss percent.
// STOPPED rows predate the SL status and count as losses. When a closed row
// has no stored percent (or a non-positive one, from older writers), the
// percent is derived from its entry and first take-profit or stop-loss.
func ComputeSignalStats(signals []models.Signal) SignalStats {
	var (
		closed      int
		hits        int
		totalProfit float64
		totalLoss   float64
	)

	for i := range signals {
		s := &signals[i]
		switch s.Status {
		case models.SignalStatusHit:
			closed++
			hits++
			totalProfit += profitPercent(s)
		case models.SignalStatusSL, models.SignalStatusStopped:
			closed++
			totalLoss += lossPercent(s)
		}
	}

	winRate := 0.0
	if closed > 0 {
		winRate = float64(hits) / float64(closed) * 100
	}

	return SignalStats{
		TotalTrades:        len(signals),
		ClosedTrades:       closed,
		WinRate:            round1(winRate),
		TotalProfitPercent: round1(totalProfit),
		TotalLossPercent:   round1(totalLoss),
	}
}

func profitPercent(s *models.Signal) float64 {
	if s.ProfitPercent != nil {
		if v, _ := s.ProfitPercent.Float64(); v > 0 {
			return v
		}
	}
	levels, err := s.Levels()
	if err != nil {
		return 0
	}
	entry, _ := levels.Entry.Float64()
	tp, _ := levels.FirstTarget.Float64()
	if entry <= 0 || tp <= 0 {
		return 0
	}
	if s.Direction == models.DirectionLong {
		return math.Abs((tp - entry) / entry * 100)
	}
	return math.Abs((entry - tp) / entry * 100)
}

func lossPercent(s *models.Signal) float64 {
	if s.LossPercent != nil {
		if v, _ := s.LossPercent.Float64(); v > 0 {
			return v
		}
	}
	entry, _ := s.Entry.Float64()
	sl, _ := s.StopLoss.Float64()
	if entry <= 0 || sl <= 0 {
		return 0
	}
	if s.Direction == models.DirectionLong {
		return math.Abs((entry - sl) / entry * 100)
	}
	return math.Abs((sl - entry) / entry * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
