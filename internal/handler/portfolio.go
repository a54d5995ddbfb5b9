package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cryptobit/internal/models"
	"cryptobit/internal/repository"
)

// PortfolioHandler manages per-user holdings, keyed by the identity header.
type PortfolioHandler struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (h *PortfolioHandler) Register(r *gin.RouterGroup) {
	r.GET("/portfolio", h.list)
	r.POST("/portfolio", h.create)
	r.PUT("/portfolio/:id", h.update)
	r.DELETE("/portfolio/:id", h.delete)
}

func (h *PortfolioHandler) list(c *gin.Context) {
	userID, _, _ := identity(c)
	if userID == "" {
		Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	items, err := h.Repo.ListHoldingsByUser(c.Request.Context(), userID)
	if err != nil {
		Error(c, http.StatusInternalServerError, "failed to list holdings", nil)
		return
	}
	Ok(c, items, nil)
}

type holdingRequest struct {
	CoinID     string `json:"coinId"`
	CoinName   string `json:"coinName"`
	CoinSymbol string `json:"coinSymbol"`
	CoinImage  string `json:"coinImage"`
	Quantity   string `json:"quantity"`
	BuyPrice   string `json:"buyPrice"`
}

func (h *PortfolioHandler) create(c *gin.Context) {
	userID, _, _ := identity(c)
	if userID == "" {
		Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var body holdingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if strings.TrimSpace(body.CoinID) == "" {
		Error(c, http.StatusBadRequest, "coinId is required", nil)
		return
	}
	quantity, err := decimal.NewFromString(strings.TrimSpace(body.Quantity))
	if err != nil || !quantity.IsPositive() {
		Error(c, http.StatusBadRequest, "quantity must be a positive number", nil)
		return
	}
	buyPrice, err := decimal.NewFromString(strings.TrimSpace(body.BuyPrice))
	if err != nil || buyPrice.IsNegative() {
		Error(c, http.StatusBadRequest, "buyPrice must be a non-negative number", nil)
		return
	}

	item := models.PortfolioHolding{
		UserID:     userID,
		CoinID:     strings.TrimSpace(body.CoinID),
		CoinName:   strings.TrimSpace(body.CoinName),
		CoinSymbol: strings.TrimSpace(body.CoinSymbol),
		CoinImage:  strings.TrimSpace(body.CoinImage),
		Quantity:   quantity,
		BuyPrice:   buyPrice,
	}
	if err := h.Repo.InsertHolding(c.Request.Context(), &item); err != nil {
		Error(c, http.StatusInternalServerError, "failed to create holding", nil)
		return
	}
	Ok(c, item, nil)
}

func (h *PortfolioHandler) update(c *gin.Context) {
	userID, _, _ := identity(c)
	if userID == "" {
		Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid holding id", nil)
		return
	}
	var body holdingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	quantity, err := decimal.NewFromString(strings.TrimSpace(body.Quantity))
	if err != nil || !quantity.IsPositive() {
		Error(c, http.StatusBadRequest, "quantity must be a positive number", nil)
		return
	}
	buyPrice, err := decimal.NewFromString(strings.TrimSpace(body.BuyPrice))
	if err != nil || buyPrice.IsNegative() {
		Error(c, http.StatusBadRequest, "buyPrice must be a non-negative number", nil)
		return
	}
	if err := h.Repo.UpdateHolding(c.Request.Context(), id, userID, quantity, buyPrice); err != nil {
		Error(c, http.StatusInternalServerError, "failed to update holding", nil)
		return
	}
	Ok(c, gin.H{"id": id}, nil)
}

func (h *PortfolioHandler) delete(c *gin.Context) {
	userID, _, _ := identity(c)
	if userID == "" {
		Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid holding id", nil)
		return
	}
	if err := h.Repo.DeleteHolding(c.Request.Context(), id, userID); err != nil {
		Error(c, http.StatusInternalServerError, "failed to delete holding", nil)
		return
	}
	Ok(c, gin.H{"id": id}, nil)
}
