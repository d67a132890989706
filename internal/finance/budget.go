package finance

import (
	"errors"
	"fmt"
	"time"

	"github.com/mikehquan19/bettero-app/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrNoBudgetPlan reports that the user has no plan for the interval kind.
// Callers render an absent budget section instead of failing the summary.
var ErrNoBudgetPlan = errors.New("no budget plan for interval type")

// MaxBudgetPlans is the most plans a user may hold (one per interval kind).
const MaxBudgetPlans = 3

// PlanFor fetches the user's budget plan of the given interval kind.
func PlanFor(db *gorm.DB, userID uint, interval models.Interval) (models.BudgetPlan, error) {
	var plan models.BudgetPlan
	err := db.Where("user_id = ? AND interval_type = ?", userID, interval).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return plan, ErrNoBudgetPlan
	}
	if err != nil {
		return plan, fmt.Errorf("query budget plan: %w", err)
	}
	return plan, nil
}

// ValidatePlan rejects a plan before persistence: category percentages must
// sum to exactly 100, a user holds at most MaxBudgetPlans plans, and at most
// one plan per interval kind. excludeID skips the plan being updated.
func ValidatePlan(db *gorm.DB, plan models.BudgetPlan, excludeID uint) error {
	if !models.ValidInterval(plan.IntervalType) {
		return fmt.Errorf("unknown interval type %q", plan.IntervalType)
	}

	sum := decimal.Zero
	for cat, portion := range plan.CategoryPortion {
		if !models.ValidCategory(cat) || cat == models.CategoryIncome {
			return fmt.Errorf("unknown budget category %q", cat)
		}
		sum = sum.Add(portion)
	}
	if !sum.Equal(hundred) {
		return fmt.Errorf("category portions add up to %s, want 100", sum)
	}

	var count int64
	if err := db.Model(&models.BudgetPlan{}).
		Where("user_id = ? AND id <> ?", plan.UserID, excludeID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("count budget plans: %w", err)
	}
	if count >= MaxBudgetPlans {
		return fmt.Errorf("the number of budget plans must be at most %d", MaxBudgetPlans)
	}

	if err := db.Model(&models.BudgetPlan{}).
		Where("user_id = ? AND interval_type = ? AND id <> ?", plan.UserID, plan.IntervalType, excludeID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("count budget plans: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("a %s budget plan already exists", plan.IntervalType)
	}
	return nil
}

// BudgetComposition pairs the plan's goal percentages with the actual
// composition of this period's spend, relative to total expense.
type BudgetComposition struct {
	Goal   map[models.Category]decimal.Decimal `json:"goal"`
	Actual map[models.Category]decimal.Decimal `json:"actual"`
}

// CompositionVsGoal compares the stored per-category allocations against the
// current period's actual expense composition. With no expense this period,
// actual stays all-zero.
func CompositionVsGoal(db *gorm.DB, userID uint, interval models.Interval, today time.Time) (BudgetComposition, error) {
	plan, err := PlanFor(db, userID, interval)
	if err != nil {
		return BudgetComposition{}, err
	}

	start, end := CurrentPeriod(interval, today)
	totals, err := CategoryTotals(db, Scope{UserID: userID}, start, end)
	if err != nil {
		return BudgetComposition{}, err
	}

	result := BudgetComposition{
		Goal:   make(map[models.Category]decimal.Decimal, len(plan.CategoryPortion)),
		Actual: make(map[models.Category]decimal.Decimal, len(plan.CategoryPortion)),
	}
	for cat, portion := range plan.CategoryPortion {
		result.Goal[cat] = portion
		result.Actual[cat] = decimal.Zero
	}
	if totals.Expense.IsZero() {
		return result, nil
	}
	for cat := range result.Goal {
		result.Actual[cat] = percentOf(totals.ByCategory[cat], totals.Expense)
	}
	return result, nil
}

// CategoryProgress is one category's spend measured against its budget.
type CategoryProgress struct {
	Budget     decimal.Decimal `json:"budget"`
	Current    decimal.Decimal `json:"current"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ExpenseKey is the synthetic progress entry for the overall expense budget.
const ExpenseKey = models.Category("Expense")

// ProgressVsBudget measures this period's spend per category against the
// plan's allocations. Progress is capped at exactly 100 once current spend
// reaches the budget; overspend shows through current vs budget, not a
// percentage above 100.
func ProgressVsBudget(db *gorm.DB, userID uint, interval models.Interval, today time.Time) (map[models.Category]CategoryProgress, error) {
	plan, err := PlanFor(db, userID, interval)
	if err != nil {
		return nil, err
	}

	start, end := CurrentPeriod(interval, today)
	totals, err := CategoryTotals(db, Scope{UserID: userID}, start, end)
	if err != nil {
		return nil, err
	}

	totalBudget := plan.RecurringIncome.Mul(plan.PortionForExpense).Div(hundred)

	progress := make(map[models.Category]CategoryProgress, len(plan.CategoryPortion)+1)
	progress[ExpenseKey] = progressOf(totalBudget, totals.Expense)
	for cat, portion := range plan.CategoryPortion {
		budget := portion.Mul(totalBudget).Div(hundred)
		progress[cat] = progressOf(budget, totals.ByCategory[cat])
	}
	return progress, nil
}

func progressOf(budget, current decimal.Decimal) CategoryProgress {
	p := CategoryProgress{Budget: budget.Round(2), Current: current}
	if current.LessThan(budget) {
		p.Percentage = percentOf(current, budget)
	} else {
		p.Percentage = hundred
	}
	return p
}
