package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cryptobit/internal/models"
	"cryptobit/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// --- Signals ----------------------------------------------------------------

func (s *Store) InsertSignal(ctx context.Context, item *models.Signal) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetSignalByID(ctx context.Context, id uint64) (*models.Signal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Signal
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListSignals(ctx context.Context, params repository.ListSignalsParams) ([]models.Signal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Signal{})
	if params.Tier != nil && strings.TrimSpace(*params.Tier) != "" {
		query = query.Where("tier = ?", strings.ToUpper(strings.TrimSpace(*params.Tier)))
	}
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.ToUpper(strings.TrimSpace(*params.Status)))
	}
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.Signal
	if err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListActiveSignals(ctx context.Context) ([]models.Signal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Signal
	if err := s.db.WithContext(ctx).
		Model(&models.Signal{}).
		Where("status = ?", models.SignalStatusActive).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdateSignalStatus(ctx context.Context, id uint64, status string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Signal{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CloseSignal writes the terminal state in one UPDATE so readers never see a
// closed signal without its exit price.
func (s *Store) CloseSignal(ctx context.Context, id uint64, params repository.CloseSignalParams) error {
	if s == nil || s.db == nil {
		return nil
	}
	updates := map[string]any{
		"status":         params.Status,
		"exit_price":     params.ExitPrice,
		"profit_percent": params.ProfitPercent,
		"loss_percent":   params.LossPercent,
		"closed_at":      params.ClosedAt,
	}
	return s.db.WithContext(ctx).
		Model(&models.Signal{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (s *Store) DeleteSignal(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&models.Signal{}, "id = ?", id).Error
}

// --- Users ------------------------------------------------------------------

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.User
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpsertUser(ctx context.Context, item *models.User) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.ID) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email",
			"username",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.User
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdateUserRole(ctx context.Context, id string, role string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (s *Store) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}

// --- Payment submissions ----------------------------------------------------

func (s *Store) InsertPaymentSubmission(ctx context.Context, item *models.PaymentSubmission) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetPaymentSubmissionByID(ctx context.Context, id uint64) (*models.PaymentSubmission, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.PaymentSubmission
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListPaymentSubmissions(ctx context.Context) ([]models.PaymentSubmission, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.PaymentSubmission
	if err := s.db.WithContext(ctx).
		Model(&models.PaymentSubmission{}).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListPaymentSubmissionsByUser(ctx context.Context, userID string) ([]models.PaymentSubmission, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.PaymentSubmission
	if err := s.db.WithContext(ctx).
		Model(&models.PaymentSubmission{}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdatePaymentSubmissionStatus(ctx context.Context, id uint64, status string, notes string, processedAt time.Time) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.PaymentSubmission{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       status,
			"admin_notes":  notes,
			"processed_at": processedAt,
		}).Error
}

// --- Portfolio holdings -----------------------------------------------------

func (s *Store) ListHoldingsByUser(ctx context.Context, userID string) ([]models.PortfolioHolding, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.PortfolioHolding
	if err := s.db.WithContext(ctx).
		Model(&models.PortfolioHolding{}).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetHoldingByID(ctx context.Context, id uint64) (*models.PortfolioHolding, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.PortfolioHolding
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) InsertHolding(ctx context.Context, item *models.PortfolioHolding) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) UpdateHolding(ctx context.Context, id uint64, userID string, quantity decimal.Decimal, buyPrice decimal.Decimal) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.PortfolioHolding{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"quantity":  quantity,
			"buy_price": buyPrice,
		}).Error
}

func (s *Store) DeleteHolding(ctx context.Context, id uint64, userID string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Delete(&models.PortfolioHolding{}, "id = ? AND user_id = ?", id, userID).Error
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

var _ repository.Repository = (*Store)(nil)
