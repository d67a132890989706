package finance

import (
	"testing"
	"time"

	"github.com/mikehquan19/bettero-app/internal/models"
)

func TestBalanceDelta_SignMatrix(t *testing.T) {
	cases := []struct {
		name        string
		accountType models.AccountType
		direction   models.FlowDirection
		want        string
	}{
		{"debit inflow raises balance", models.Debit, models.Inflow, "100.00"},
		{"debit outflow lowers balance", models.Debit, models.Outflow, "-100.00"},
		{"credit outflow raises amount owed", models.Credit, models.Outflow, "100.00"},
		{"credit inflow pays down amount owed", models.Credit, models.Inflow, "-100.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			txn := models.Transaction{Direction: tc.direction, Amount: dec("100.00")}
			assertDecimal(t, "delta", BalanceDelta(tc.accountType, txn), tc.want)
		})
	}
}

func TestAdjustAccountBalance_AppliesDeltaAndRefreshes(t *testing.T) {
	db := testDB(t)
	_, account := seedUserAndAccount(t, db, "1000.00")

	txn := seedTransaction(t, db, account, models.CategoryGrocery, models.Outflow, "50.00",
		date(2024, time.June, 5))
	if err := AdjustAccountBalance(db, &account, txn); err != nil {
		t.Fatalf("AdjustAccountBalance: %v", err)
	}
	assertDecimal(t, "balance after outflow", account.Balance, "950.00")

	var stored models.Account
	if err := db.First(&stored, account.ID).Error; err != nil {
		t.Fatalf("reload account: %v", err)
	}
	assertDecimal(t, "stored balance", stored.Balance, "950.00")
}

func TestAdjustAccountBalance_MissingAccount(t *testing.T) {
	db := testDB(t)
	_, account := seedUserAndAccount(t, db, "0")

	ghost := models.Account{ID: account.ID + 99, AccountType: models.Debit}
	txn := models.Transaction{Direction: models.Inflow, Amount: dec("10.00")}
	if err := AdjustAccountBalance(db, &ghost, txn); err == nil {
		t.Error("AdjustAccountBalance succeeded on a missing account")
	}
}
