package finance

import (
	"testing"
	"time"

	"github.com/mikehquan19/bettero-app/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database per test. A single connection
// keeps the in-memory schema alive for the test's duration.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Transaction{},
		&models.BudgetPlan{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedUserAndAccount(t *testing.T, db *gorm.DB, balance string) (models.User, models.Account) {
	t.Helper()

	user := models.User{Username: "tester", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	account := models.Account{
		UserID:        user.ID,
		AccountNumber: 12345678,
		Name:          "Checking",
		AccountType:   models.Debit,
		Balance:       dec(balance),
	}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return user, account
}

func seedTransaction(t *testing.T, db *gorm.DB, account models.Account, category models.Category,
	direction models.FlowDirection, amount string, occur time.Time) models.Transaction {
	t.Helper()

	txn := models.Transaction{
		UserID:      account.UserID,
		AccountID:   account.ID,
		Description: "seed",
		Category:    category,
		Direction:   direction,
		Amount:      dec(amount),
		OccurDate:   occur,
	}
	if err := db.Create(&txn).Error; err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	return txn
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}
