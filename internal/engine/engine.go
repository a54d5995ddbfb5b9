package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cryptobit/internal/client/coingecko"
	"cryptobit/internal/models"
	"cryptobit/internal/repository"
)

var hundred = decimal.NewFromInt(100)

// PriceSource yields the current USD spot price for a CoinGecko coin id.
type PriceSource interface {
	SpotPrice(ctx context.Context, coinID string) (float64, error)
}

// Engine closes active signals whose stop-loss or take-profit has been
// reached. One pass lists the ACTIVE set, prices each signal and applies the
// trigger rule; signals that cannot be evaluated this pass are skipped and
// retried on the next one.
type Engine struct {
	Repo   repository.Repository
	Prices PriceSource
	Logger *zap.Logger
	Now    func() time.Time

	running atomic.Bool
}

// EvaluateOnce runs a single evaluation pass. If a pass is already in
// flight the call returns immediately; the tick is dropped, not queued.
func (e *Engine) EvaluateOnce(ctx context.Context) error {
	if e == nil || e.Repo == nil || e.Prices == nil {
		return nil
	}
	if !e.running.CompareAndSwap(false, true) {
		if e.Logger != nil {
			e.Logger.Debug("evaluation pass already running, dropping tick")
		}
		return nil
	}
	defer e.running.Store(false)

	signals, err := e.Repo.ListActiveSignals(ctx)
	if err != nil {
		return err
	}
	if len(signals) == 0 {
		return nil
	}

	for i := range signals {
		e.evaluateSignal(ctx, &signals[i])
	}
	return nil
}

// evaluateSignal handles one signal in isolation so a bad row or a pricing
// failure never aborts the rest of the pass.
func (e *Engine) evaluateSignal(ctx context.Context, sig *models.Signal) {
	coinID := sig.CoinID
	if coinID == "" {
		id, ok := coingecko.CoinIDFromPair(sig.Pair)
		if !ok {
			if e.Logger != nil {
				e.Logger.Warn("no coin id for pair, skipping signal",
					zap.Uint64("signal_id", sig.ID),
					zap.String("pair", sig.Pair))
			}
			return
		}
		coinID = id
	}

	spot, err := e.Prices.SpotPrice(ctx, coinID)
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn("spot price unavailable, skipping signal",
				zap.Uint64("signal_id", sig.ID),
				zap.String("coin_id", coinID),
				zap.Error(err))
		}
		return
	}
	price := decimal.NewFromFloat(spot)

	levels, err := sig.Levels()
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn("malformed signal levels, skipping signal",
				zap.Uint64("signal_id", sig.ID),
				zap.String("pair", sig.Pair),
				zap.Error(err))
		}
		return
	}

	status, profit, loss, hit := applyTriggerRule(sig.Direction, price, levels)
	if !hit {
		return
	}

	closedAt := e.now()
	params := repository.CloseSignalParams{
		Status:    status,
		ExitPrice: price,
		ClosedAt:  closedAt,
	}
	if profit != nil {
		params.ProfitPercent = profit
	}
	if loss != nil {
		params.LossPercent = loss
	}
	if err := e.Repo.CloseSignal(ctx, sig.ID, params); err != nil {
		if e.Logger != nil {
			e.Logger.Error("close signal failed",
				zap.Uint64("signal_id", sig.ID),
				zap.String("status", status),
				zap.Error(err))
		}
		return
	}
	if e.Logger != nil {
		e.Logger.Info("signal closed",
			zap.Uint64("signal_id", sig.ID),
			zap.String("pair", sig.Pair),
			zap.String("status", status),
			zap.String("exit_price", price.String()))
	}
}

// applyTriggerRule decides whether price closes the signal. The take-profit
// side is checked before the stop-loss so a move that gaps through both
// levels in one poll closes as a win.
func applyTriggerRule(direction string, price decimal.Decimal, levels models.TradeLevels) (status string, profit, loss *decimal.Decimal, hit bool) {
	tp := levels.FirstTarget
	sl := levels.StopLoss
	entry := levels.Entry

	switch direction {
	case models.DirectionLong:
		if price.GreaterThanOrEqual(tp) {
			p := tp.Sub(entry).Div(entry).Mul(hundred)
			return models.SignalStatusHit, &p, nil, true
		}
		if price.LessThanOrEqual(sl) {
			l := entry.Sub(sl).Div(entry).Mul(hundred)
			return models.SignalStatusSL, nil, &l, true
		}
	case models.DirectionShort:
		if price.LessThanOrEqual(tp) {
			p := entry.Sub(tp).Div(entry).Mul(hundred)
			return models.SignalStatusHit, &p, nil, true
		}
		if price.GreaterThanOrEqual(sl) {
			l := sl.Sub(entry).Div(entry).Mul(hundred)
			return models.SignalStatusSL, nil, &l, true
		}
	}
	return "", nil, nil, false
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now().UTC()
}
