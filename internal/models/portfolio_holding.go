package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PortfolioHolding struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID string `gorm:"type:varchar(100);not null;index" json:"userId"`

	CoinID     string `gorm:"type:varchar(100);not null" json:"coinId"`
	CoinName   string `gorm:"type:varchar(100)" json:"coinName"`
	CoinSymbol string `gorm:"type:varchar(20)" json:"coinSymbol"`
	CoinImage  string `gorm:"type:varchar(300)" json:"coinImage"`

	Quantity decimal.Decimal `gorm:"type:numeric(30,10);not null;default:0" json:"quantity"`
	BuyPrice decimal.Decimal `gorm:"type:numeric(20,10);not null;default:0" json:"buyPrice"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`
}

func (PortfolioHolding) TableName() string {
	return "portfolio_holdings"
}
