package engine

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"cryptobit/internal/models"
	"cryptobit/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// Evaluation tests only exercise the signal methods; the rest are no-ops.
type stubRepo struct {
	active  []models.Signal
	listErr error

	closed map[uint64]repository.CloseSignalParams
}

func newStubRepo(active ...models.Signal) *stubRepo {
	return &stubRepo{
		active: active,
		closed: map[uint64]repository.CloseSignalParams{},
	}
}

func (s *stubRepo) InsertSignal(ctx context.Context, item *models.Signal) error { return nil }
func (s *stubRepo) GetSignalByID(ctx context.Context, id uint64) (*models.Signal, error) {
	return nil, nil
}
func (s *stubRepo) ListSignals(ctx context.Context, params repository.ListSignalsParams) ([]models.Signal, error) {
	return s.active, nil
}
func (s *stubRepo) ListActiveSignals(ctx context.Context) ([]models.Signal, error) {
	return s.active, s.listErr
}
func (s *stubRepo) UpdateSignalStatus(ctx context.Context, id uint64, status string) error {
	return nil
}
func (s *stubRepo) CloseSignal(ctx context.Context, id uint64, params repository.CloseSignalParams) error {
	s.closed[id] = params
	return nil
}
func (s *stubRepo) DeleteSignal(ctx context.Context, id uint64) error { return nil }

func (s *stubRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return nil, nil
}
func (s *stubRepo) UpsertUser(ctx context.Context, item *models.User) error { return nil }
func (s *stubRepo) ListUsers(ctx context.Context) ([]models.User, error)    { return nil, nil }
func (s *stubRepo) UpdateUserRole(ctx context.Context, id string, role string) error {
	return nil
}
func (s *stubRepo) CountUsers(ctx context.Context) (int64, error) { return 0, nil }
func (s *stubRepo) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	return 0, nil
}

func (s *stubRepo) InsertPaymentSubmission(ctx context.Context, item *models.PaymentSubmission) error {
	return nil
}
func (s *stubRepo) GetPaymentSubmissionByID(ctx context.Context, id uint64) (*models.PaymentSubmission, error) {
	return nil, nil
}
func (s *stubRepo) ListPaymentSubmissions(ctx context.Context) ([]models.PaymentSubmission, error) {
	return nil, nil
}
func (s *stubRepo) ListPaymentSubmissionsByUser(ctx context.Context, userID string) ([]models.PaymentSubmission, error) {
	return nil, nil
}
func (s *stubRepo) UpdatePaymentSubmissionStatus(ctx context.Context, id uint64, status string, notes string, processedAt time.Time) error {
	return nil
}

func (s *stubRepo) ListHoldingsByUser(ctx context.Context, userID string) ([]models.PortfolioHolding, error) {
	return nil, nil
}
func (s *stubRepo) GetHoldingByID(ctx context.Context, id uint64) (*models.PortfolioHolding, error) {
	return nil, nil
}
func (s *stubRepo) InsertHolding(ctx context.Context, item *models.PortfolioHolding) error {
	return nil
}
func (s *stubRepo) UpdateHolding(ctx context.Context, id uint64, userID string, quantity decimal.Decimal, buyPrice decimal.Decimal) error {
	return nil
}
func (s *stubRepo) DeleteHolding(ctx context.Context, id uint64, userID string) error {
	return nil
}

var _ repository.Repository = (*stubRepo)(nil)
