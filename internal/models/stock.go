package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock is a holding of the user. A user holds at most one row per symbol
// (enforced by the composite unique index).
type Stock struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"uniqueIndex:idx_stock_user_symbol;not null" json:"user_id"`
	Symbol      string          `gorm:"size:10;uniqueIndex:idx_stock_user_symbol;not null" json:"symbol"`
	Corporation string          `gorm:"size:100" json:"corporation"`
	Shares      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"shares"`

	// OHLCV snapshot as of LastUpdatedDate
	PreviousClose decimal.Decimal `gorm:"type:decimal(12,2)" json:"previous_close"`
	CurrentClose  decimal.Decimal `gorm:"type:decimal(12,2)" json:"current_close"`
	Open          decimal.Decimal `gorm:"type:decimal(12,2)" json:"open"`
	Low           decimal.Decimal `gorm:"type:decimal(12,2)" json:"low"`
	High          decimal.Decimal `gorm:"type:decimal(12,2)" json:"high"`
	Volume        int64           `json:"volume"`

	LastUpdatedDate time.Time `json:"last_updated_date"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// DateStockPrice is the closing price of a stock on one date. Rows dated
// before the first day of the previous calendar month are pruned.
type DateStockPrice struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	StockID        uint            `gorm:"index;not null" json:"stock_id"`
	Date           time.Time       `gorm:"index;not null" json:"date"`
	GivenDateClose decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"given_date_close"`

	Stock Stock `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// PortfolioValue is the aggregate market value of a user's holdings on one
// date. One row per (user, date); the valuation job upserts on that key.
type PortfolioValue struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UserID         uint            `gorm:"uniqueIndex:idx_portfolio_user_date;not null" json:"user_id"`
	Date           time.Time       `gorm:"uniqueIndex:idx_portfolio_user_date;not null" json:"date"`
	GivenDateValue decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"given_date_value"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
