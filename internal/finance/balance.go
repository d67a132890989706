package finance

import (
	"fmt"

	"github.com/mikehquan19/bettero-app/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BalanceDelta is the signed change a transaction applies to its account's
// balance. Debit accounts lose on outflow and gain on inflow; credit
// accounts invert the sign, since spending on credit raises the amount owed.
func BalanceDelta(accountType models.AccountType, txn models.Transaction) decimal.Decimal {
	delta := txn.Amount
	if txn.Direction == models.Outflow {
		delta = delta.Neg()
	}
	if accountType == models.Credit {
		delta = delta.Neg()
	}
	return delta
}

// AdjustAccountBalance applies the transaction's delta to the account row.
// The balance moves in a single arithmetic UPDATE so two concurrent posts
// cannot lose each other's adjustment. Must be invoked exactly once per
// transaction lifecycle event. The passed account is refreshed on success.
func AdjustAccountBalance(db *gorm.DB, account *models.Account, txn models.Transaction) error {
	delta := BalanceDelta(account.AccountType, txn)

	result := db.Model(&models.Account{}).
		Where("id = ?", account.ID).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("adjust balance of account %d: %w", account.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("adjust balance: account %d not found", account.ID)
	}

	return db.First(account, account.ID).Error
}
