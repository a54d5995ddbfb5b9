package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cryptobit/internal/marketdata"
)

// MarketsHandler serves the public market-data endpoints. Everything reads
// through the TTL cache; a dead upstream with no cached fallback is a 502.
type MarketsHandler struct {
	MD     *marketdata.Service
	Logger *zap.Logger
}

func (h *MarketsHandler) Register(r *gin.RouterGroup) {
	r.GET("/global", h.global)
	r.GET("/global/chart", h.globalChart)
	r.GET("/markets", h.markets)
	r.GET("/coin/:id", h.coinDetail)
	r.GET("/coin/:id/chart", h.coinChart)
}

func (h *MarketsHandler) global(c *gin.Context) {
	stats, err := h.MD.GlobalStats(c.Request.Context())
	if err != nil {
		h.upstreamError(c, "global stats unavailable", err)
		return
	}
	Ok(c, stats, nil)
}

func (h *MarketsHandler) globalChart(c *gin.Context) {
	days := intQuery(c, "days", 30)
	points, err := h.MD.MarketCapChart(c.Request.Context(), days)
	if err != nil {
		h.upstreamError(c, "market cap chart unavailable", err)
		return
	}
	Ok(c, points, nil)
}

func (h *MarketsHandler) markets(c *gin.Context) {
	items, err := h.MD.Markets(c.Request.Context())
	if err != nil {
		h.upstreamError(c, "markets unavailable", err)
		return
	}
	Ok(c, items, nil)
}

func (h *MarketsHandler) coinDetail(c *gin.Context) {
	id := c.Param("id")
	detail, err := h.MD.CoinDetail(c.Request.Context(), id)
	if err != nil {
		h.upstreamError(c, "coin detail unavailable", err)
		return
	}
	Ok(c, detail, nil)
}

func (h *MarketsHandler) coinChart(c *gin.Context) {
	id := c.Param("id")
	period := c.DefaultQuery("period", "24H")
	points, err := h.MD.CoinChart(c.Request.Context(), id, period)
	if err != nil {
		h.upstreamError(c, "coin chart unavailable", err)
		return
	}
	Ok(c, points, nil)
}

func (h *MarketsHandler) upstreamError(c *gin.Context, message string, err error) {
	if h.Logger != nil {
		h.Logger.Warn(message, zap.Error(err))
	}
	Error(c, http.StatusBadGateway, message, nil)
}
