package tasks

import (
	"fmt"
	"log"

	"github.com/mikehquan19/bettero-app/internal/models"

	"gorm.io/gorm"
)

// SweepOverdueBills converts every bill past its due date into an
// OverdueBillMessage and deletes the bill, one all-or-nothing transaction
// per user so an interrupted sweep never leaves a message without having
// consumed its bill (or the reverse). Messages from earlier days are pruned.
func (r *Runner) SweepOverdueBills() error {
	today := r.today()

	var userIDs []uint
	if err := r.db.Model(&models.Bill{}).
		Where("due_date < ?", today).
		Distinct().Pluck("user_id", &userIDs).Error; err != nil {
		return fmt.Errorf("query users with overdue bills: %w", err)
	}

	for _, userID := range userIDs {
		err := r.db.Transaction(func(tx *gorm.DB) error {
			var bills []models.Bill
			if err := tx.Where("user_id = ? AND due_date < ?", userID, today).
				Find(&bills).Error; err != nil {
				return fmt.Errorf("query overdue bills: %w", err)
			}
			if len(bills) == 0 {
				return nil
			}

			messages := make([]models.OverdueBillMessage, 0, len(bills))
			billIDs := make([]uint, 0, len(bills))
			for _, bill := range bills {
				messages = append(messages, models.OverdueBillMessage{
					UserID:          userID,
					BillDescription: bill.Description,
					BillAmount:      bill.Amount,
					BillDueDate:     bill.DueDate,
					AppearDate:      today,
				})
				billIDs = append(billIDs, bill.ID)
			}

			if err := tx.Create(&messages).Error; err != nil {
				return fmt.Errorf("create overdue messages: %w", err)
			}
			if err := tx.Delete(&models.Bill{}, billIDs).Error; err != nil {
				return fmt.Errorf("delete overdue bills: %w", err)
			}

			log.Printf("swept %d overdue bills of user %d", len(bills), userID)
			return nil
		})
		if err != nil {
			return fmt.Errorf("sweep bills of user %d: %w", userID, err)
		}
	}

	// messages only live for a day
	if err := r.db.Where("appear_date < ?", today).
		Delete(&models.OverdueBillMessage{}).Error; err != nil {
		return fmt.Errorf("prune overdue messages: %w", err)
	}
	return nil
}
