package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single posted transaction. Amount is always stored
// positive; Direction says which way the money moved. OccurDate carries a
// time component used only as an ordering tie-breaker, never for period
// bucketing (bucketing is by date).
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"index;not null" json:"user_id"`
	AccountID   uint            `gorm:"index;not null" json:"account_id"`
	Description string          `gorm:"size:200;not null" json:"description"`
	Category    Category        `gorm:"size:30;index;not null" json:"category"`
	Direction   FlowDirection   `gorm:"size:10;index;not null" json:"direction"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	OccurDate   time.Time       `gorm:"index;not null" json:"occur_date"`
	CreatedAt   time.Time       `json:"-"`

	User    User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Account Account `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
