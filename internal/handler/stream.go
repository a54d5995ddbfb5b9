package handler

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"cryptobit/internal/marketdata"
	"cryptobit/internal/repository"
	"cryptobit/internal/service"
)

// StreamHandler pushes live pair prices for open signals over a websocket.
// Prices come from the same read-through cache as the REST surface, so a
// burst of stream clients costs at most one upstream refresh per TTL.
type StreamHandler struct {
	Repo         repository.Repository
	MD           *marketdata.Service
	Logger       *zap.Logger
	PushInterval time.Duration
}

func (h *StreamHandler) Register(r *gin.RouterGroup) {
	r.GET("/stream/prices", h.prices)
}

type pricesFrame struct {
	Prices map[string]float64 `json:"prices"`
	At     time.Time          `json:"at"`
}

func (h *StreamHandler) prices(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("websocket accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	interval := h.PushInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ctx := c.Request.Context()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		signals, err := h.Repo.ListActiveSignals(ctx)
		if err != nil {
			if h.Logger != nil {
				h.Logger.Warn("stream signal list failed", zap.Error(err))
			}
			return
		}
		frame := pricesFrame{
			Prices: service.LivePrices(ctx, h.MD, h.Logger, signals),
			At:     time.Now().UTC(),
		}
		payload, err := json.Marshal(frame)
		if err != nil {
			return
		}
		if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
