package tasks

import (
	"fmt"
	"log"

	"github.com/mikehquan19/bettero-app/internal/models"
)

// PruneStalePrices deletes DateStockPrice and PortfolioValue rows dated
// before the first day of the previous calendar month.
func (r *Runner) PruneStalePrices() error {
	cutoff := firstOfMonth(r.today()).AddDate(0, -1, 0)

	prices := r.db.Where("date < ?", cutoff).Delete(&models.DateStockPrice{})
	if prices.Error != nil {
		return fmt.Errorf("prune stock prices: %w", prices.Error)
	}
	values := r.db.Where("date < ?", cutoff).Delete(&models.PortfolioValue{})
	if values.Error != nil {
		return fmt.Errorf("prune portfolio values: %w", values.Error)
	}

	if n := prices.RowsAffected + values.RowsAffected; n > 0 {
		log.Printf("pruned %d price rows older than %s", n, cutoff.Format("2006-01-02"))
	}
	return nil
}

// PruneStaleTransactions deletes transactions older than five calendar
// months counted back from the first day of the current month.
func (r *Runner) PruneStaleTransactions() error {
	cutoff := firstOfMonth(r.today()).AddDate(0, -5, 0)

	result := r.db.Where("occur_date < ?", cutoff).Delete(&models.Transaction{})
	if result.Error != nil {
		return fmt.Errorf("prune transactions: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("pruned %d transactions older than %s", result.RowsAffected, cutoff.Format("2006-01-02"))
	}
	return nil
}
