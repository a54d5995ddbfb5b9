package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"cryptobit/internal/models"
)

// ListSignalsParams filters the signal list. Nil fields mean "any".
type ListSignalsParams struct {
	Tier   *string
	Status *string
	Limit  int
	Offset int
}

// CloseSignalParams is everything a signal closure writes. The store applies
// it as a single update so a closed signal is never half-written.
type CloseSignalParams struct {
	Status        string
	ExitPrice     decimal.Decimal
	ProfitPercent *decimal.Decimal
	LossPercent   *decimal.Decimal
	ClosedAt      time.Time
}

type Repository interface {
	// Signals
	InsertSignal(ctx context.Context, item *models.Signal) error
	GetSignalByID(ctx context.Context, id uint64) (*models.Signal, error)
	ListSignals(ctx context.Context, params ListSignalsParams) ([]models.Signal, error)
	ListActiveSignals(ctx context.Context) ([]models.Signal, error)
	UpdateSignalStatus(ctx context.Context, id uint64, status string) error
	CloseSignal(ctx context.Context, id uint64, params CloseSignalParams) error
	DeleteSignal(ctx context.Context, id uint64) error

	// Users
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpsertUser(ctx context.Context, item *models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, id string, role string) error
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByRole(ctx context.Context, role string) (int64, error)

	// Payment submissions
	InsertPaymentSubmission(ctx context.Context, item *models.PaymentSubmission) error
	GetPaymentSubmissionByID(ctx context.Context, id uint64) (*models.PaymentSubmission, error)
	ListPaymentSubmissions(ctx context.Context) ([]models.PaymentSubmission, error)
	ListPaymentSubmissionsByUser(ctx context.Context, userID string) ([]models.PaymentSubmission, error)
	UpdatePaymentSubmissionStatus(ctx context.Context, id uint64, status string, notes string, processedAt time.Time) error

	// Portfolio holdings
	ListHoldingsByUser(ctx context.Context, userID string) ([]models.PortfolioHolding, error)
	GetHoldingByID(ctx context.Context, id uint64) (*models.PortfolioHolding, error)
	InsertHolding(ctx context.Context, item *models.PortfolioHolding) error
	UpdateHolding(ctx context.Context, id uint64, userID string, quantity decimal.Decimal, buyPrice decimal.Decimal) error
	DeleteHolding(ctx context.Context, id uint64, userID string) error
}
