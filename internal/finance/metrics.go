package finance

import (
	"time"

	"github.com/mikehquan19/bettero-app/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// percentOf returns part/whole*100 rounded half-up to 2 decimal places.
// Rounding mode is half-up everywhere percentages are produced.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	return part.Div(whole).Mul(hundred).Round(2)
}

// CompositionPercentage computes each expense category's share of the
// period's total activity. A zero total short-circuits to all zeroes.
func CompositionPercentage(db *gorm.DB, scope Scope, start, end time.Time) (map[models.Category]decimal.Decimal, error) {
	totals, err := CategoryTotals(db, scope, start, end)
	if err != nil {
		return nil, err
	}
	return Composition(totals), nil
}

// Composition computes the share of each expense category from precomputed
// totals.
func Composition(totals Totals) map[models.Category]decimal.Decimal {
	composition := make(map[models.Category]decimal.Decimal, len(models.ExpenseCategories))
	for _, cat := range models.ExpenseCategories {
		composition[cat] = decimal.Zero
	}
	if totals.Total.IsZero() {
		return composition
	}
	for _, cat := range models.ExpenseCategories {
		composition[cat] = percentOf(totals.ByCategory[cat], totals.Total)
	}
	return composition
}

// ChangePercentage computes the period-over-period delta per expense
// category. A category with no previous spend counts as a full 100%
// increase when it has current spend, and 0% when both periods are empty.
func ChangePercentage(db *gorm.DB, scope Scope, interval models.Interval, start, end time.Time) (map[models.Category]decimal.Decimal, error) {
	prevStart, prevEnd := PreviousPeriod(interval, start, end)

	curr, err := CategoryTotals(db, scope, start, end)
	if err != nil {
		return nil, err
	}
	prev, err := CategoryTotals(db, scope, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}
	return changeOf(curr, prev), nil
}

func changeOf(curr, prev Totals) map[models.Category]decimal.Decimal {
	change := make(map[models.Category]decimal.Decimal, len(models.ExpenseCategories))
	for _, cat := range models.ExpenseCategories {
		currAmount, prevAmount := curr.ByCategory[cat], prev.ByCategory[cat]
		switch {
		case !prevAmount.IsZero():
			change[cat] = percentOf(currAmount.Sub(prevAmount), prevAmount)
		case !currAmount.IsZero():
			change[cat] = hundred
		default:
			change[cat] = decimal.Zero
		}
	}
	return change
}

// DailyExpense is one day's expense-only sum within a period.
type DailyExpense struct {
	Date   string          `json:"date"` // MM/DD/YYYY
	Amount decimal.Decimal `json:"amount"`
}

const dailyDateLayout = "01/02/2006"

// DailySeries sums expense transactions per calendar day over [start, end]
// inclusive, zero-filling days without activity. One range query loads the
// period; bucketing by day happens here.
func DailySeries(db *gorm.DB, scope Scope, start, end time.Time) ([]DailyExpense, error) {
	start, end = DateOf(start), DateOf(end)

	var rows []struct {
		OccurDate time.Time
		Amount    decimal.Decimal
	}
	err := scope.apply(db.Model(&models.Transaction{})).
		Select("occur_date", "amount").
		Where("direction = ?", models.Outflow).
		Where("occur_date >= ? AND occur_date < ?", start, end.AddDate(0, 0, 1)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]decimal.Decimal)
	for _, row := range rows {
		key := DateOf(row.OccurDate).Format(dailyDateLayout)
		byDay[key] = byDay[key].Add(row.Amount)
	}

	var series []DailyExpense
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(dailyDateLayout)
		series = append(series, DailyExpense{Date: key, Amount: byDay[key]})
	}
	return series, nil
}

// PeriodSummary is the full set of derived metrics for one period.
type PeriodSummary struct {
	FirstDate    time.Time                           `json:"first_date"`
	LastDate     time.Time                           `json:"last_date"`
	TotalExpense decimal.Decimal                     `json:"total_expense"`
	Change       map[models.Category]decimal.Decimal `json:"expense_change"`
	Composition  map[models.Category]decimal.Decimal `json:"expense_composition"`
	Daily        []DailyExpense                      `json:"daily_expense"`
}

// rollupPeriods is how many periods MultiPeriodRollup walks back through.
const rollupPeriods = 5

// MultiPeriodRollup summarizes the 5 most recent periods of every interval
// kind, most recent first.
func MultiPeriodRollup(db *gorm.DB, scope Scope, today time.Time) (map[models.Interval][]PeriodSummary, error) {
	rollup := make(map[models.Interval][]PeriodSummary, len(models.Intervals))

	for _, interval := range models.Intervals {
		summaries := make([]PeriodSummary, 0, rollupPeriods)
		start, end := CurrentPeriod(interval, today)

		for i := 0; i < rollupPeriods; i++ {
			totals, err := CategoryTotals(db, scope, start, end)
			if err != nil {
				return nil, err
			}
			change, err := ChangePercentage(db, scope, interval, start, end)
			if err != nil {
				return nil, err
			}
			daily, err := DailySeries(db, scope, start, end)
			if err != nil {
				return nil, err
			}

			summaries = append(summaries, PeriodSummary{
				FirstDate:    start,
				LastDate:     end,
				TotalExpense: totals.Expense,
				Change:       change,
				Composition:  Composition(totals),
				Daily:        daily,
			})
			start, end = PreviousPeriod(interval, start, end)
		}
		rollup[interval] = summaries
	}
	return rollup, nil
}
