package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cryptobit/internal/config"
	"cryptobit/internal/marketdata"
	"cryptobit/internal/models"
	"cryptobit/internal/repository"
	"cryptobit/internal/service"
)

type SignalsHandler struct {
	Repo   repository.Repository
	MD     *marketdata.Service
	Admin  config.AdminConfig
	Logger *zap.Logger
}

func (h *SignalsHandler) Register(r *gin.RouterGroup) {
	r.GET("/signals", h.list)
	r.PATCH("/signals/:id/status", h.updateStatus)
	r.DELETE("/signals/:id", h.delete)
}

type signalsPayload struct {
	Signals    []models.Signal     `json:"signals"`
	Stats      service.SignalStats `json:"stats"`
	LivePrices map[string]float64  `json:"livePrices"`
}

// list returns the tier-filtered signal list plus stats computed over the
// full set, so the public tier still sees overall performance.
func (h *SignalsHandler) list(c *gin.Context) {
	ctx := c.Request.Context()
	all, err := h.Repo.ListSignals(ctx, repository.ListSignalsParams{Limit: 500})
	if err != nil {
		Error(c, http.StatusInternalServerError, "failed to list signals", nil)
		return
	}

	filtered := all
	if tier := strQueryPtr(c, "tier"); tier != nil {
		want := strings.ToUpper(strings.TrimSpace(*tier))
		filtered = make([]models.Signal, 0, len(all))
		for _, s := range all {
			if s.Tier == want {
				filtered = append(filtered, s)
			}
		}
	}

	Ok(c, signalsPayload{
		Signals:    filtered,
		Stats:      service.ComputeSignalStats(all),
		LivePrices: service.LivePrices(ctx, h.MD, h.Logger, filtered),
	}, nil)
}

// updateStatus is a manual override; it only flips the status column and
// never writes exit price or P&L.
func (h *SignalsHandler) updateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid signal id", nil)
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	status := strings.ToUpper(strings.TrimSpace(body.Status))
	switch status {
	case models.SignalStatusActive, models.SignalStatusHit, models.SignalStatusSL:
	default:
		Error(c, http.StatusBadRequest, "invalid status", nil)
		return
	}
	if err := h.Repo.UpdateSignalStatus(c.Request.Context(), id, status); err != nil {
		Error(c, http.StatusInternalServerError, "failed to update signal", nil)
		return
	}
	Ok(c, gin.H{"id": id, "status": status}, nil)
}

func (h *SignalsHandler) delete(c *gin.Context) {
	if h.Admin.Password == "" || c.GetHeader("X-Admin-Auth") != h.Admin.Password {
		Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid signal id", nil)
		return
	}
	if err := h.Repo.DeleteSignal(c.Request.Context(), id); err != nil {
		Error(c, http.StatusInternalServerError, "failed to delete signal", nil)
		return
	}
	Ok(c, gin.H{"id": id}, nil)
}
