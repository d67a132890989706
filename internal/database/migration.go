package database

import (
	"fmt"

	"github.com/mikehquan19/bettero-app/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Account{},
		&models.Transaction{},
		&models.BudgetPlan{},
		&models.Bill{},
		&models.OverdueBillMessage{},
		&models.Stock{},
		&models.DateStockPrice{},
		&models.PortfolioValue{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
