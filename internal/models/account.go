package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a financial account of the user. Balance is kept consistent
// with the signed transactions applied to it by finance.AdjustAccountBalance;
// it is never recomputed from scratch.
type Account struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"index;not null" json:"user_id"`
	AccountNumber int64           `gorm:"not null" json:"account_number"`
	Name          string          `gorm:"size:50;not null" json:"name"`
	Institution   string          `gorm:"size:50" json:"institution"`
	AccountType   AccountType     `gorm:"size:20;not null" json:"account_type"`
	Balance       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance"`

	// credit accounts only
	CreditLimit *decimal.Decimal `gorm:"type:decimal(12,2)" json:"credit_limit,omitempty"`
	DueDate     *time.Time       `json:"due_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
