package handler

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cryptobit/internal/config"
	"cryptobit/internal/models"
	"cryptobit/internal/repository"
)

var allowedScreenshotExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// PaymentsHandler accepts manual payment screenshots for PRO upgrades and
// lets users track their own submissions.
type PaymentsHandler struct {
	Repo   repository.Repository
	Cfg    config.UploadsConfig
	Logger *zap.Logger
}

func (h *PaymentsHandler) Register(r *gin.RouterGroup) {
	r.POST("/payments/submit", h.submit)
	r.GET("/payments/my-submissions", h.mySubmissions)
}

func (h *PaymentsHandler) submit(c *gin.Context) {
	userID, email, name := identity(c)
	if userID == "" {
		Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	maxBytes := int64(h.Cfg.MaxSizeMB) * 1024 * 1024
	if maxBytes <= 0 {
		maxBytes = 5 * 1024 * 1024
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	file, err := c.FormFile("screenshot")
	if err != nil {
		Error(c, http.StatusBadRequest, "screenshot file is required", nil)
		return
	}
	if file.Size > maxBytes {
		Error(c, http.StatusBadRequest, "screenshot exceeds size limit", nil)
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedScreenshotExts[ext] {
		Error(c, http.StatusBadRequest, "screenshot must be a jpeg, png, gif or webp image", nil)
		return
	}

	if err := os.MkdirAll(h.Cfg.Dir, 0o755); err != nil {
		Error(c, http.StatusInternalServerError, "failed to store screenshot", nil)
		return
	}
	filename := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1_000_000_000), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(h.Cfg.Dir, filename)); err != nil {
		Error(c, http.StatusInternalServerError, "failed to store screenshot", nil)
		return
	}

	sub := models.PaymentSubmission{
		UserID:          userID,
		UserEmail:       email,
		UserName:        name,
		ReferenceNumber: newReferenceNumber(),
		ScreenshotURL:   strings.TrimRight(h.Cfg.PublicPath, "/") + "/" + filename,
		Status:          models.PaymentStatusPending,
	}
	if err := h.Repo.InsertPaymentSubmission(c.Request.Context(), &sub); err != nil {
		Error(c, http.StatusInternalServerError, "failed to record submission", nil)
		return
	}
	if h.Logger != nil {
		h.Logger.Info("payment submission received",
			zap.String("user_id", userID),
			zap.String("reference", sub.ReferenceNumber))
	}
	Ok(c, sub, nil)
}

func (h *PaymentsHandler) mySubmissions(c *gin.Context) {
	userID, _, _ := identity(c)
	if userID == "" {
		Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	items, err := h.Repo.ListPaymentSubmissionsByUser(c.Request.Context(), userID)
	if err != nil {
		Error(c, http.StatusInternalServerError, "failed to list submissions", nil)
		return
	}
	Ok(c, items, nil)
}

// newReferenceNumber yields a human-quotable id like PAY-M3K9XQ-7F2A.
func newReferenceNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := strings.ToUpper(strconv.FormatInt(rand.Int63n(36*36*36*36), 36))
	for len(suffix) < 4 {
		suffix = "0" + suffix
	}
	return "PAY-" + ts + "-" + suffix
}
