package handler

import (
	"net/http"
	"time"

	"github.com/mikehquan19/bettero-app/internal/finance"
	"github.com/mikehquan19/bettero-app/internal/models"
	"github.com/mikehquan19/bettero-app/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SummaryHandler serves the user's financial summary endpoints.
type SummaryHandler struct {
	DB *gorm.DB
}

func NewSummaryHandler(db *gorm.DB) *SummaryHandler {
	return &SummaryHandler{DB: db}
}

// totalBalanceAndAmountDue sums debit balances and credit balances (owed).
func (h *SummaryHandler) totalBalanceAndAmountDue(userID uint) (decimal.Decimal, decimal.Decimal, error) {
	var accounts []models.Account
	if err := h.DB.Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	balance, due := decimal.Zero, decimal.Zero
	for _, account := range accounts {
		if account.AccountType == models.Debit {
			balance = balance.Add(account.Balance)
		} else {
			due = due.Add(account.Balance)
		}
	}
	return balance, due, nil
}

// UserSummary returns the headline numbers plus current-month metrics.
func (h *SummaryHandler) UserSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	scope := finance.Scope{UserID: user.ID}
	start, end := finance.CurrentPeriod(models.IntervalMonth, time.Now())

	balance, amountDue, err := h.totalBalanceAndAmountDue(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query accounts")
		return
	}

	totals, err := finance.CategoryTotals(h.DB, scope, start, end)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute totals")
		return
	}
	change, err := finance.ChangePercentage(h.DB, scope, models.IntervalMonth, start, end)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute change")
		return
	}
	// daily series runs month-start through today, not month-end
	daily, err := finance.DailySeries(h.DB, scope, start, time.Now())
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute daily expense")
		return
	}

	util.Success(c, util.Response{
		"total_balance":          balance,
		"total_amount_due":       amountDue,
		"total_income":           totals.Income,
		"total_expense":          totals.Expense,
		"change_percentage":      change,
		"composition_percentage": finance.Composition(totals),
		"daily_expense":          daily,
	})
}

// FullSummary returns the 5-period rollup for every interval kind plus the
// current month's transactions.
func (h *SummaryHandler) FullSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	rollup, err := finance.MultiPeriodRollup(h.DB, finance.Scope{UserID: user.ID}, time.Now())
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute summary")
		return
	}

	current := rollup[models.IntervalMonth][0]
	var txns []models.Transaction
	err = h.DB.Where("user_id = ? AND occur_date >= ? AND occur_date < ?",
		user.ID, current.FirstDate, current.LastDate.AddDate(0, 0, 1)).
		Order("occur_date DESC, id DESC").
		Find(&txns).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query transactions")
		return
	}

	util.Success(c, util.Response{
		"latest_interval_expense":  rollup,
		"initial_transaction_data": txns,
	})
}
