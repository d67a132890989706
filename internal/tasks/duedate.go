package tasks

import (
	"fmt"
	"log"

	"github.com/mikehquan19/bettero-app/internal/models"

	"gorm.io/gorm"
)

// RolloverCreditDueDates advances the due date of every credit account whose
// due date has arrived. The next due date is stepped month by month until it
// lands after today, so running the job twice on the same day leaves the
// rows unchanged.
func (r *Runner) RolloverCreditDueDates() error {
	today := r.today()

	return r.db.Transaction(func(tx *gorm.DB) error {
		var accounts []models.Account
		if err := tx.
			Where("account_type = ? AND due_date IS NOT NULL AND due_date <= ?", models.Credit, today).
			Find(&accounts).Error; err != nil {
			return fmt.Errorf("query due credit accounts: %w", err)
		}

		for i := range accounts {
			due := *accounts[i].DueDate
			for !due.After(today) {
				due = addOneCalendarMonth(due)
			}
			if err := tx.Model(&accounts[i]).UpdateColumn("due_date", due).Error; err != nil {
				return fmt.Errorf("update due date of account %d: %w", accounts[i].ID, err)
			}
		}

		if len(accounts) > 0 {
			log.Printf("rolled over due dates of %d credit accounts", len(accounts))
		}
		return nil
	})
}
