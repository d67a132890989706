package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is a pending obligation of the user. Deleting a bill that has a pay
// account and is not yet overdue converts it into a payment transaction;
// bills left past their due date are swept into OverdueBillMessages.
type Bill struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"index;not null" json:"user_id"`
	PayAccountID *uint           `gorm:"index" json:"pay_account_id,omitempty"`
	Description  string          `gorm:"size:200;not null" json:"description"`
	Category     Category        `gorm:"size:30;not null" json:"category"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	DueDate      time.Time       `gorm:"index;not null" json:"due_date"`
	CreatedAt    time.Time       `json:"-"`

	User       User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PayAccount *Account `gorm:"constraint:OnDelete:SET NULL" json:"-"`
}

// OverdueBillMessage is a transient notice snapshotting a bill that went
// overdue. Messages older than one day are pruned by the sweep job.
type OverdueBillMessage struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	BillDescription string          `gorm:"size:200;not null" json:"bill_description"`
	BillAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"bill_amount"`
	BillDueDate     time.Time       `json:"bill_due_date"`
	AppearDate      time.Time       `gorm:"index" json:"appear_date"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
