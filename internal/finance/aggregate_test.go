package finance

import (
	"testing"
	"time"

	"github.com/mikehquan19/bettero-app/internal/models"
)

func TestCategoryTotals_EmptyRangeZeroFills(t *testing.T) {
	db := testDB(t)
	user, _ := seedUserAndAccount(t, db, "1000.00")

	totals, err := CategoryTotals(db, Scope{UserID: user.ID},
		date(2024, time.June, 1), date(2024, time.June, 30))
	if err != nil {
		t.Fatalf("CategoryTotals: %v", err)
	}

	assertDecimal(t, "Total", totals.Total, "0")
	assertDecimal(t, "Expense", totals.Expense, "0")
	assertDecimal(t, "Income", totals.Income, "0")
	if len(totals.ByCategory) != len(models.ExpenseCategories) {
		t.Errorf("ByCategory has %d buckets, want %d", len(totals.ByCategory), len(models.ExpenseCategories))
	}
	for cat, amount := range totals.ByCategory {
		if !amount.IsZero() {
			t.Errorf("ByCategory[%s] = %s, want 0", cat, amount)
		}
	}
}

func TestCategoryTotals_PartitionsByDirection(t *testing.T) {
	db := testDB(t)
	user, account := seedUserAndAccount(t, db, "1000.00")

	seedTransaction(t, db, account, models.CategoryGrocery, models.Outflow, "50.00", date(2024, time.June, 5))
	seedTransaction(t, db, account, models.CategoryDining, models.Outflow, "30.00", date(2024, time.June, 10))
	seedTransaction(t, db, account, models.CategoryIncome, models.Inflow, "2000.00", date(2024, time.June, 1))

	totals, err := CategoryTotals(db, Scope{UserID: user.ID},
		date(2024, time.June, 1), date(2024, time.June, 30))
	if err != nil {
		t.Fatalf("CategoryTotals: %v", err)
	}

	assertDecimal(t, "Income", totals.Income, "2000.00")
	assertDecimal(t, "Expense", totals.Expense, "80.00")
	assertDecimal(t, "Total", totals.Total, "2080.00")
	assertDecimal(t, "Grocery", totals.ByCategory[models.CategoryGrocery], "50.00")
	assertDecimal(t, "Dining", totals.ByCategory[models.CategoryDining], "30.00")
}

func TestCategoryTotals_BoundsAreInclusive(t *testing.T) {
	db := testDB(t)
	user, account := seedUserAndAccount(t, db, "0")

	seedTransaction(t, db, account, models.CategoryGas, models.Outflow, "10.00", date(2024, time.June, 1))
	seedTransaction(t, db, account, models.CategoryGas, models.Outflow, "20.00", date(2024, time.June, 30))
	// just outside
	seedTransaction(t, db, account, models.CategoryGas, models.Outflow, "99.00", date(2024, time.May, 31))
	seedTransaction(t, db, account, models.CategoryGas, models.Outflow, "99.00", date(2024, time.July, 1))

	totals, err := CategoryTotals(db, Scope{UserID: user.ID},
		date(2024, time.June, 1), date(2024, time.June, 30))
	if err != nil {
		t.Fatalf("CategoryTotals: %v", err)
	}
	assertDecimal(t, "Expense", totals.Expense, "30.00")
}

func TestCategoryTotals_UnknownCategoryFoldsIntoOthers(t *testing.T) {
	db := testDB(t)
	user, account := seedUserAndAccount(t, db, "0")

	// a category retired from the enumerated set but still present in old rows
	seedTransaction(t, db, account, models.Category("Entertainment"), models.Outflow, "25.00", date(2024, time.June, 5))

	totals, err := CategoryTotals(db, Scope{UserID: user.ID},
		date(2024, time.June, 1), date(2024, time.June, 30))
	if err != nil {
		t.Fatalf("CategoryTotals: %v", err)
	}
	assertDecimal(t, "Others", totals.ByCategory[models.CategoryOthers], "25.00")
	assertDecimal(t, "Expense", totals.Expense, "25.00")
}

func TestCategoryTotals_AccountScopeNarrows(t *testing.T) {
	db := testDB(t)
	user, account := seedUserAndAccount(t, db, "0")

	other := models.Account{
		UserID:        user.ID,
		AccountNumber: 87654321,
		Name:          "Savings",
		AccountType:   models.Debit,
		Balance:       dec("0"),
	}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}

	seedTransaction(t, db, account, models.CategoryGrocery, models.Outflow, "50.00", date(2024, time.June, 5))
	seedTransaction(t, db, other, models.CategoryGrocery, models.Outflow, "70.00", date(2024, time.June, 5))

	totals, err := CategoryTotals(db, Scope{AccountID: account.ID},
		date(2024, time.June, 1), date(2024, time.June, 30))
	if err != nil {
		t.Fatalf("CategoryTotals: %v", err)
	}
	assertDecimal(t, "Expense", totals.Expense, "50.00")

	totals, err = CategoryTotals(db, Scope{UserID: user.ID},
		date(2024, time.June, 1), date(2024, time.June, 30))
	if err != nil {
		t.Fatalf("CategoryTotals: %v", err)
	}
	assertDecimal(t, "Expense", totals.Expense, "120.00")
}
