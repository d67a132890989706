package finance

import (
	"testing"
	"time"

	"github.com/mikehquan19/bettero-app/internal/models"
)

func TestComposition_ZeroTotalShortCircuits(t *testing.T) {
	got := Composition(ZeroTotals())
	if len(got) != len(models.ExpenseCategories) {
		t.Fatalf("composition has %d buckets, want %d", len(got), len(models.ExpenseCategories))
	}
	for cat, pct := range got {
		if !pct.IsZero() {
			t.Errorf("composition[%s] = %s, want 0", cat, pct)
		}
	}
}

func TestComposition_SharesOfTotal(t *testing.T) {
	totals := ZeroTotals()
	totals.ByCategory[models.CategoryGrocery] = dec("50.00")
	totals.ByCategory[models.CategoryDining] = dec("30.00")
	totals.Expense = dec("80.00")
	totals.Income = dec("120.00")
	totals.Total = dec("200.00")

	got := Composition(totals)
	assertDecimal(t, "Grocery share", got[models.CategoryGrocery], "25")
	assertDecimal(t, "Dining share", got[models.CategoryDining], "15")
	assertDecimal(t, "Housing share", got[models.CategoryHousing], "0")
}

func TestComposition_RoundsHalfUp(t *testing.T) {
	totals := ZeroTotals()
	totals.ByCategory[models.CategoryGas] = dec("1.00")
	totals.Expense = dec("1.00")
	totals.Total = dec("3.00")

	got := Composition(totals)
	// 1/3 * 100 = 33.333... -> 33.33
	assertDecimal(t, "Gas share", got[models.CategoryGas], "33.33")
}

func TestChangeOf_Sentinels(t *testing.T) {
	curr, prev := ZeroTotals(), ZeroTotals()
	curr.ByCategory[models.CategoryGrocery] = dec("150.00")
	prev.ByCategory[models.CategoryGrocery] = dec("100.00")
	curr.ByCategory[models.CategoryDining] = dec("40.00") // no previous spend
	prev.ByCategory[models.CategoryShopping] = dec("80.00")
	curr.ByCategory[models.CategoryShopping] = dec("60.00")

	got := changeOf(curr, prev)
	assertDecimal(t, "Grocery change", got[models.CategoryGrocery], "50")
	assertDecimal(t, "Dining change (new spend)", got[models.CategoryDining], "100")
	assertDecimal(t, "Shopping change (drop)", got[models.CategoryShopping], "-25")
	assertDecimal(t, "Housing change (both empty)", got[models.CategoryHousing], "0")
}

func TestChangePercentage_QueriesBothPeriods(t *testing.T) {
	db := testDB(t)
	user, account := seedUserAndAccount(t, db, "0")

	seedTransaction(t, db, account, models.CategoryGrocery, models.Outflow, "100.00", date(2024, time.May, 15))
	seedTransaction(t, db, account, models.CategoryGrocery, models.Outflow, "150.00", date(2024, time.June, 15))

	got, err := ChangePercentage(db, Scope{UserID: user.ID}, models.IntervalMonth,
		date(2024, time.June, 1), date(2024, time.June, 30))
	if err != nil {
		t.Fatalf("ChangePercentage: %v", err)
	}
	assertDecimal(t, "Grocery change", got[models.CategoryGrocery], "50")
}

func TestDailySeries_ZeroFillsAndSumsExpensesOnly(t *testing.T) {
	db := testDB(t)
	user, account := seedUserAndAccount(t, db, "0")

	seedTransaction(t, db, account, models.CategoryGrocery, models.Outflow, "20.00", date(2024, time.June, 2))
	seedTransaction(t, db, account, models.CategoryDining, models.Outflow, "15.00", date(2024, time.June, 2))
	seedTransaction(t, db, account, models.CategoryIncome, models.Inflow, "500.00", date(2024, time.June, 3))

	series, err := DailySeries(db, Scope{UserID: user.ID},
		date(2024, time.June, 1), date(2024, time.June, 4))
	if err != nil {
		t.Fatalf("DailySeries: %v", err)
	}

	if len(series) != 4 {
		t.Fatalf("series has %d days, want 4", len(series))
	}
	if series[0].Date != "06/01/2024" {
		t.Errorf("first date = %s, want 06/01/2024", series[0].Date)
	}
	assertDecimal(t, "day 1", series[0].Amount, "0")
	assertDecimal(t, "day 2", series[1].Amount, "35.00")
	assertDecimal(t, "day 3 (inflow ignored)", series[2].Amount, "0")
	assertDecimal(t, "day 4", series[3].Amount, "0")
}

func TestMultiPeriodRollup_FiveSummariesPerInterval(t *testing.T) {
	db := testDB(t)
	user, account := seedUserAndAccount(t, db, "0")
	seedTransaction(t, db, account, models.CategoryGrocery, models.Outflow, "10.00", date(2024, time.June, 5))

	rollup, err := MultiPeriodRollup(db, Scope{UserID: user.ID}, date(2024, time.June, 12))
	if err != nil {
		t.Fatalf("MultiPeriodRollup: %v", err)
	}

	if len(rollup) != len(models.Intervals) {
		t.Fatalf("rollup has %d interval kinds, want %d", len(rollup), len(models.Intervals))
	}
	for _, interval := range models.Intervals {
		summaries := rollup[interval]
		if len(summaries) != 5 {
			t.Errorf("%s rollup has %d summaries, want 5", interval, len(summaries))
			continue
		}
		// most recent first
		for i := 1; i < len(summaries); i++ {
			if !summaries[i].LastDate.Before(summaries[i-1].FirstDate) {
				t.Errorf("%s summaries not in reverse chronological order at %d", interval, i)
			}
		}
	}

	months := rollup[models.IntervalMonth]
	assertDecimal(t, "current month expense", months[0].TotalExpense, "10.00")
	assertDecimal(t, "previous month expense", months[1].TotalExpense, "0")
}
