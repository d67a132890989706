package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPlan allocates the user's recurring income into a spending ceiling
// and per-category sub-allocations for one interval kind. A user holds at
// most three plans, one per interval kind; per-category percentages must
// sum to 100. Both rules are enforced before persistence.
type BudgetPlan struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	IntervalType    Interval        `gorm:"size:20;not null" json:"interval_type"`
	RecurringIncome decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"recurring_income"`

	// portion of the recurring income reserved for expenses, in percent
	PortionForExpense decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"portion_for_expense"`

	// category name -> percentage of the expense budget
	CategoryPortion map[Category]decimal.Decimal `gorm:"serializer:json" json:"category_portion"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
