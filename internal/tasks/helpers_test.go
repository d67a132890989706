package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/mikehquan19/bettero-app/internal/market"
	"github.com/mikehquan19/bettero-app/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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
		&models.Bill{},
		&models.OverdueBillMessage{},
		&models.Stock{},
		&models.DateStockPrice{},
		&models.PortfolioValue{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// testRunner pins the runner's clock to the given day.
func testRunner(t *testing.T, db *gorm.DB, provider market.Provider, today time.Time) *Runner {
	t.Helper()
	r := NewRunner(db, provider)
	r.now = func() time.Time { return today }
	return r
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fakeProvider serves canned bars per symbol and records calls. Symbols in
// fail return an error.
type fakeProvider struct {
	bars  map[string][]market.Bar
	fail  map[string]error
	calls []string
}

func (p *fakeProvider) FetchDailyBars(_ context.Context, symbol string, _, _ time.Time) ([]market.Bar, error) {
	p.calls = append(p.calls, symbol)
	if err, ok := p.fail[symbol]; ok {
		return nil, err
	}
	bars, ok := p.bars[symbol]
	if !ok || len(bars) == 0 {
		return nil, market.ErrSymbolNotFound
	}
	return bars, nil
}
