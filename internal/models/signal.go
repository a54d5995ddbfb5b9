package models

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	SignalStatusActive = "ACTIVE"
	SignalStatusHit    = "HIT"
	SignalStatusSL     = "SL"
	// SignalStatusStopped survives from legacy rows only; nothing assigns it.
	SignalStatusStopped = "STOPPED"

	DirectionLong  = "LONG"
	DirectionShort = "SHORT"

	TierFree = "FREE"
	TierPro  = "PRO"
)

// ErrMalformedSignal marks a signal whose price levels cannot be evaluated.
var ErrMalformedSignal = errors.New("malformed signal levels")

// Signal is a published trade idea: entry, stop-loss and ordered take-profit
// targets on a crypto pair, evaluated against live spot prices until closed.
type Signal struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Pair   string `gorm:"type:varchar(30);not null;index" json:"pair"`
	CoinID string `gorm:"type:varchar(100)" json:"coinId"`

	Direction string `gorm:"type:varchar(10);not null" json:"direction"`

	Entry    decimal.Decimal `gorm:"type:numeric(20,10);not null" json:"entry"`
	StopLoss decimal.Decimal `gorm:"type:numeric(20,10);not null" json:"stopLoss"`
	// TakeProfits keeps the legacy comma-separated shape in storage; use
	// Levels() to read it.
	TakeProfits string `gorm:"type:varchar(200);not null" json:"takeProfits"`
	Leverage    int    `gorm:"not null;default:1" json:"leverage"`

	Status string `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	Tier   string `gorm:"type:varchar(10);not null;default:'FREE';index" json:"tier"`

	ExitPrice     *decimal.Decimal `gorm:"type:numeric(20,10)" json:"exitPrice,omitempty"`
	ProfitPercent *decimal.Decimal `gorm:"type:numeric(20,10)" json:"profitPercent,omitempty"`
	LossPercent   *decimal.Decimal `gorm:"type:numeric(20,10)" json:"lossPercent,omitempty"`

	CreatedAt time.Time  `gorm:"type:timestamptz;autoCreateTime;index" json:"createdAt"`
	ClosedAt  *time.Time `gorm:"type:timestamptz" json:"closedAt,omitempty"`
}

func (Signal) TableName() string {
	return "signals"
}

// IsClosed reports whether the signal has reached a terminal status.
func (s *Signal) IsClosed() bool {
	return s.Status == SignalStatusHit || s.Status == SignalStatusSL || s.Status == SignalStatusStopped
}

// TradeLevels is the parsed, validated view of a signal's price levels.
type TradeLevels struct {
	Entry       decimal.Decimal
	StopLoss    decimal.Decimal
	FirstTarget decimal.Decimal
	Targets     []decimal.Decimal
}

// Levels parses the stored take-profit list and validates every level.
// It returns ErrMalformedSignal when the list is empty, a target does not
// parse, or any level is non-positive. No auto-correction: a bad row is the
// caller's problem to skip.
func (s *Signal) Levels() (TradeLevels, error) {
	if !s.Entry.IsPositive() || !s.StopLoss.IsPositive() {
		return TradeLevels{}, ErrMalformedSignal
	}

	parts := strings.Split(s.TakeProfits, ",")
	targets := make([]decimal.Decimal, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := decimal.NewFromString(p)
		if err != nil || !d.IsPositive() {
			return TradeLevels{}, ErrMalformedSignal
		}
		targets = append(targets, d)
	}
	if len(targets) == 0 {
		return TradeLevels{}, ErrMalformedSignal
	}

	return TradeLevels{
		Entry:       s.Entry,
		StopLoss:    s.StopLoss,
		FirstTarget: targets[0],
		Targets:     targets,
	}, nil
}

// ParseLeverage accepts "10", "10x" or "10X" and returns the multiplier.
// Anything unparsable or below 1 collapses to 1.
func ParseLeverage(raw string) int {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(raw, "x"), "X"))
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
