package models

import "time"

const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusApproved = "APPROVED"
	PaymentStatusRejected = "REJECTED"
)

// PaymentSubmission is a manually reviewed PRO-upgrade request: the user
// uploads a payment screenshot and an admin approves or rejects it.
type PaymentSubmission struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string `gorm:"type:varchar(100);not null;index" json:"userId"`
	UserEmail string `gorm:"type:varchar(200)" json:"userEmail"`
	UserName  string `gorm:"type:varchar(100)" json:"userName"`

	ReferenceNumber string `gorm:"type:varchar(40);not null;uniqueIndex" json:"referenceNumber"`
	ScreenshotURL   string `gorm:"type:varchar(300)" json:"screenshotUrl"`

	Status     string `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	AdminNotes string `gorm:"type:text" json:"adminNotes,omitempty"`

	ProcessedAt *time.Time `gorm:"type:timestamptz" json:"processedAt,omitempty"`
	CreatedAt   time.Time  `gorm:"type:timestamptz;autoCreateTime;index" json:"createdAt"`
}

func (PaymentSubmission) TableName() string {
	return "payment_submissions"
}
