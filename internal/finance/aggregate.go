package finance

import (
	"fmt"
	"time"

	"github.com/mikehquan19/bettero-app/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Scope selects whose transactions are aggregated: all of a user's, or a
// single account's. Exactly one field should be set.
type Scope struct {
	UserID    uint
	AccountID uint
}

func (s Scope) apply(q *gorm.DB) *gorm.DB {
	if s.AccountID != 0 {
		return q.Where("account_id = ?", s.AccountID)
	}
	return q.Where("user_id = ?", s.UserID)
}

// Totals holds the category-bucketed sums of one period. ByCategory always
// contains every expense category, zero-filled.
type Totals struct {
	Total      decimal.Decimal
	Expense    decimal.Decimal
	Income     decimal.Decimal
	ByCategory map[models.Category]decimal.Decimal
}

// ZeroTotals returns a Totals with every bucket zero-filled.
func ZeroTotals() Totals {
	byCat := make(map[models.Category]decimal.Decimal, len(models.ExpenseCategories))
	for _, cat := range models.ExpenseCategories {
		byCat[cat] = decimal.Zero
	}
	return Totals{ByCategory: byCat}
}

// CategoryTotals sums the scope's transactions with occurrence date in
// [start, end] inclusive, partitioned into income (inflow) and expense
// (outflow) with per-category expense buckets. A single range query loads
// the rows; grouping happens here to keep the sums in decimal arithmetic.
func CategoryTotals(db *gorm.DB, scope Scope, start, end time.Time) (Totals, error) {
	totals := ZeroTotals()

	var rows []struct {
		Category  models.Category
		Direction models.FlowDirection
		Amount    decimal.Decimal
	}
	err := scope.apply(db.Model(&models.Transaction{})).
		Select("category", "direction", "amount").
		Where("occur_date >= ? AND occur_date < ?", DateOf(start), DateOf(end).AddDate(0, 0, 1)).
		Find(&rows).Error
	if err != nil {
		return totals, fmt.Errorf("query transactions: %w", err)
	}

	for _, row := range rows {
		if row.Direction == models.Inflow {
			totals.Income = totals.Income.Add(row.Amount)
			continue
		}
		totals.Expense = totals.Expense.Add(row.Amount)
		cat := row.Category
		if _, ok := totals.ByCategory[cat]; !ok {
			cat = models.CategoryOthers
		}
		totals.ByCategory[cat] = totals.ByCategory[cat].Add(row.Amount)
	}

	totals.Total = totals.Income.Add(totals.Expense)
	return totals, nil
}
