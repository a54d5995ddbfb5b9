package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cryptobit/internal/client/coingecko"
	"cryptobit/internal/config"
	"cryptobit/internal/models"
	"cryptobit/internal/repository"
)

// AdminHandler serves the password-gated admin surface plus the API-key
// automation entry point used by external signal publishers.
type AdminHandler struct {
	Repo   repository.Repository
	Cfg    config.AdminConfig
	Logger *zap.Logger
}

func (h *AdminHandler) Register(r *gin.RouterGroup) {
	r.POST("/admin/login", h.login)

	gated := r.Group("", h.requirePassword)
	gated.GET("/admin/stats", h.stats)
	gated.GET("/admin/users", h.listUsers)
	gated.POST("/admin/users/role", h.updateRole)
	gated.GET("/admin/signals", h.listSignals)
	gated.POST("/admin/signals", h.createSignal)
	gated.DELETE("/admin/signals/:id", h.deleteSignal)
	gated.GET("/admin/payments", h.listPayments)
	gated.POST("/admin/payments/:id/approve", h.approvePayment)
	gated.POST("/admin/payments/:id/reject", h.rejectPayment)

	// Automation route: same create path, keyed auth instead of the panel
	// password.
	r.POST("/admin/signal", h.requireAPIKey, h.createSignal)
}

func (h *AdminHandler) requirePassword(c *gin.Context) {
	if h.Cfg.Password == "" || c.GetHeader("X-Admin-Auth") != h.Cfg.Password {
		Error(c, http.StatusUnauthorized, "unauthorized", nil)
		c.Abort()
		return
	}
	c.Next()
}

func (h *AdminHandler) requireAPIKey(c *gin.Context) {
	if h.Cfg.APIKey == "" || c.GetHeader("X-Admin-Key") != h.Cfg.APIKey {
		Error(c, http.StatusUnauthorized, "unauthorized", nil)
		c.Abort()
		return
	}
	c.Next()
}

func (h *AdminHandler) login(c *gin.Context) {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if h.Cfg.Password == "" || body.Password != h.Cfg.Password {
		Error(c, http.StatusUnauthorized, "invalid password", nil)
		return
	}
	Ok(c, gin.H{"authenticated": true}, nil)
}

func (h *AdminHandler) stats(c *gin.Context) {
	ctx := c.Request.Context()
	totalUsers, err := h.Repo.CountUsers(ctx)
	if err != nil {
		Error(c, http.StatusInternalServerError, "failed to count users", nil)
		return
	}
	proUsers, err := h.Repo.CountUsersByRole(ctx, models.RolePro)
	if err != nil {
		Error(c, http.StatusInternalServerError, "failed to count users", nil)
		return
	}
	signals, err := h.Repo.ListSignals(ctx, repository.ListSignalsParams{Limit: 500})
	if err != nil {
		Error(c, http.StatusInternalServerError, "failed to list signals", nil)
		return
	}
	active := 0
	for _, s := range signals {
		if s.Status == models.SignalStatusActive {
			active++
		}
	}
	Ok(c, gin.H{
		"totalUsers":    totalUsers,
		"proUsers":      proUsers,
		"totalSignals":  len(signals),
		"activeSignals": active,
	}, nil)
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	users, err := h.Repo.ListUsers(c.Request.Context())
	if err != nil {
		Error(c, http.StatusInternalServerError, "failed to list users", nil)
		return
	}
	Ok(c, users, nil)
}

func (h *AdminHandler) updateRole(c *gin.Context) {
	var body struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	role := strings.ToUpper(strings.TrimSpace(body.Role))
	switch role {
	case models.RoleFree, models.RolePro, models.RoleAdmin:
	default:
		Error(c, http.StatusBadRequest, "invalid role", nil)
		return
	}
	if err := h.Repo.UpdateUserRole(c.Request.Context(), body.UserID, role); err != nil {
		Error(c, http.StatusInternalServerError, "failed to update role", nil)
		return
	}
	Ok(c, gin.H{"userId": body.UserID, "role": role}, nil)
}

func (h *AdminHandler) listSignals(c *gin.Context) {
	params := repository.ListSignalsParams{
		Tier:   strQueryPtr(c, "tier"),
		Status: strQueryPtr(c, "status"),
		Limit:  intQuery(c, "limit", 200),
	}
	signals, err := h.Repo.ListSignals(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusInternalServerError, "failed to list signals", nil)
		return
	}
	Ok(c, signals, nil)
}

type createSignalRequest struct {
	Pair        string `json:"pair"`
	Direction   string `json:"direction"`
	Entry       string `json:"entry"`
	StopLoss    string `json:"stopLoss"`
	TakeProfits string `json:"takeProfits"`
	Leverage    string `json:"leverage"`
	Tier        string `json:"tier"`
}

func (h *AdminHandler) createSignal(c *gin.Context) {
	var body createSignalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	pair := strings.ToUpper(strings.TrimSpace(body.Pair))
	direction := strings.ToUpper(strings.TrimSpace(body.Direction))
	if pair == "" {
		Error(c, http.StatusBadRequest, "pair is required", nil)
		return
	}
	if direction != models.DirectionLong && direction != models.DirectionShort {
		Error(c, http.StatusBadRequest, "direction must be LONG or SHORT", nil)
		return
	}

	entry, err := decimal.NewFromString(strings.TrimSpace(body.Entry))
	if err != nil || !entry.IsPositive() {
		Error(c, http.StatusBadRequest, "entry must be a positive number", nil)
		return
	}
	stopLoss, err := decimal.NewFromString(strings.TrimSpace(body.StopLoss))
	if err != nil || !stopLoss.IsPositive() {
		Error(c, http.StatusBadRequest, "stopLoss must be a positive number", nil)
		return
	}

	tier := strings.ToUpper(strings.TrimSpace(body.Tier))
	if tier != models.TierPro {
		tier = models.TierFree
	}

	coinID, _ := coingecko.CoinIDFromPair(pair)
	sig := models.Signal{
		Pair:        pair,
		CoinID:      coinID,
		Direction:   direction,
		Entry:       entry,
		StopLoss:    stopLoss,
		TakeProfits: strings.TrimSpace(body.TakeProfits),
		Leverage:    models.ParseLeverage(body.Leverage),
		Status:      models.SignalStatusActive,
		Tier:        tier,
	}
	if _, err := sig.Levels(); err != nil {
		Error(c, http.StatusBadRequest, "takeProfits must contain at least one positive target", nil)
		return
	}

	if err := h.Repo.InsertSignal(c.Request.Context(), &sig); err != nil {
		Error(c, http.StatusInternalServerError, "failed to create signal", nil)
		return
	}
	if h.Logger != nil {
		h.Logger.Info("signal created",
			zap.Uint64("signal_id", sig.ID),
			zap.String("pair", sig.Pair),
			zap.String("direction", sig.Direction))
	}
	Ok(c, sig, nil)
}

func (h *AdminHandler) deleteSignal(c *gin.Context) {
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

func (h *AdminHandler) listPayments(c *gin.Context) {
	items, err := h.Repo.ListPaymentSubmissions(c.Request.Context())
	if err != nil {
		Error(c, http.StatusInternalServerError, "failed to list payments", nil)
		return
	}
	Ok(c, items, nil)
}

// approvePayment marks the submission approved and upgrades the submitting
// user to PRO in the same request.
func (h *AdminHandler) approvePayment(c *gin.Context) {
	h.processPayment(c, models.PaymentStatusApproved)
}

func (h *AdminHandler) rejectPayment(c *gin.Context) {
	h.processPayment(c, models.PaymentStatusRejected)
}

func (h *AdminHandler) processPayment(c *gin.Context, status string) {
	ctx := c.Request.Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid payment id", nil)
		return
	}
	var body struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&body)

	sub, err := h.Repo.GetPaymentSubmissionByID(ctx, id)
	if err != nil {
		Error(c, http.StatusInternalServerError, "failed to load payment", nil)
		return
	}
	if sub == nil {
		Error(c, http.StatusNotFound, "payment not found", nil)
		return
	}

	if err := h.Repo.UpdatePaymentSubmissionStatus(ctx, id, status, body.Notes, time.Now().UTC()); err != nil {
		Error(c, http.StatusInternalServerError, "failed to update payment", nil)
		return
	}
	if status == models.PaymentStatusApproved {
		if err := h.Repo.UpdateUserRole(ctx, sub.UserID, models.RolePro); err != nil {
			Error(c, http.StatusInternalServerError, "payment approved but role upgrade failed", nil)
			return
		}
	}
	Ok(c, gin.H{"id": id, "status": status}, nil)
}
