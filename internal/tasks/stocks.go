package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikehquan19/bettero-app/internal/market"
	"github.com/mikehquan19/bettero-app/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// fetchTimeout bounds the market-data request for one symbol. A slow symbol
// is skipped for this cycle rather than stalling the whole refresh.
const fetchTimeout = 10 * time.Second

// RefreshStockPrices pulls the latest daily bar for every held stock, shifts
// the close snapshot, appends a DateStockPrice row, and revalues every
// portfolio. Weekends are skipped entirely (market closed). Stocks already
// updated today are filtered out, so a same-day rerun is a no-op. Per-symbol
// fetch failures are logged and skipped; the job only fails when no symbol
// could be fetched at all.
func (r *Runner) RefreshStockPrices(ctx context.Context) error {
	today := r.today()
	if wd := today.Weekday(); wd == time.Saturday || wd == time.Sunday {
		log.Print("stock refresh: market closed, nothing to update")
		return nil
	}

	var stocks []models.Stock
	if err := r.db.Where("last_updated_date < ?", today).Find(&stocks).Error; err != nil {
		return fmt.Errorf("query stocks: %w", err)
	}
	if len(stocks) == 0 {
		return nil
	}

	type refreshed struct {
		stock models.Stock
		bar   market.Bar
	}

	// fetch everything before touching the database
	var updates []refreshed
	var failed int
	for _, stock := range stocks {
		fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		bars, err := r.provider.FetchDailyBars(fetchCtx, stock.Symbol, today.AddDate(0, 0, -1), today)
		cancel()
		if err != nil {
			failed++
			log.Printf("stock refresh: skipping %s this cycle: %v", stock.Symbol, err)
			continue
		}
		updates = append(updates, refreshed{stock: stock, bar: bars[len(bars)-1]})
	}
	if len(updates) == 0 {
		return fmt.Errorf("stock refresh: all %d symbols failed", failed)
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			stock, bar := u.stock, u.bar

			nextDate := stock.LastUpdatedDate.AddDate(0, 0, 1)
			if stock.LastUpdatedDate.Weekday() == time.Friday {
				nextDate = stock.LastUpdatedDate.AddDate(0, 0, 3) // skip the weekend
			}

			err := tx.Model(&models.Stock{}).Where("id = ?", stock.ID).Updates(map[string]interface{}{
				"previous_close":    stock.CurrentClose,
				"current_close":     bar.Close,
				"open":              bar.Open,
				"low":               bar.Low,
				"high":              bar.High,
				"volume":            bar.Volume,
				"last_updated_date": nextDate,
			}).Error
			if err != nil {
				return fmt.Errorf("update stock %s: %w", stock.Symbol, err)
			}

			price := models.DateStockPrice{StockID: stock.ID, Date: nextDate, GivenDateClose: bar.Close}
			if err := tx.Create(&price).Error; err != nil {
				return fmt.Errorf("create price row for %s: %w", stock.Symbol, err)
			}
		}

		return valuePortfolios(tx, today.AddDate(0, 0, -1))
	})
	if err != nil {
		return err
	}

	log.Printf("stock refresh: updated %d stocks, skipped %d", len(updates), failed)
	return nil
}

// ValuePortfolios writes one PortfolioValue row per user dated yesterday.
func (r *Runner) ValuePortfolios() error {
	return valuePortfolios(r.db, r.today().AddDate(0, 0, -1))
}

// valuePortfolios computes every user's holdings value (shares x current
// close) and upserts the row keyed by (user, date), so a rerun on the same
// date overwrites rather than duplicates.
func valuePortfolios(tx *gorm.DB, date time.Time) error {
	var userIDs []uint
	if err := tx.Model(&models.Stock{}).Distinct().Pluck("user_id", &userIDs).Error; err != nil {
		return fmt.Errorf("query stock holders: %w", err)
	}

	for _, userID := range userIDs {
		var stocks []models.Stock
		if err := tx.Where("user_id = ?", userID).Find(&stocks).Error; err != nil {
			return fmt.Errorf("query stocks of user %d: %w", userID, err)
		}

		total := decimal.Zero
		for _, stock := range stocks {
			total = total.Add(stock.Shares.Mul(stock.CurrentClose))
		}

		value := models.PortfolioValue{UserID: userID, Date: date, GivenDateValue: total.Round(2)}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"given_date_value"}),
		}).Create(&value).Error
		if err != nil {
			return fmt.Errorf("upsert portfolio value of user %d: %w", userID, err)
		}
	}
	return nil
}
