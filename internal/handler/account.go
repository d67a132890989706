package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mikehquan19/bettero-app/internal/finance"
	"github.com/mikehquan19/bettero-app/internal/models"
	"github.com/mikehquan19/bettero-app/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountHandler serves the user's financial accounts.
type AccountHandler struct {
	DB *gorm.DB
}

func NewAccountHandler(db *gorm.DB) *AccountHandler {
	return &AccountHandler{DB: db}
}

type accountReq struct {
	AccountNumber int64              `json:"account_number" binding:"required"`
	Name          string             `json:"name" binding:"required,max=50"`
	Institution   string             `json:"institution" binding:"max=50"`
	AccountType   models.AccountType `json:"account_type" binding:"required,oneof=Debit Credit"`
	Balance       decimal.Decimal    `json:"balance"`
	CreditLimit   *decimal.Decimal   `json:"credit_limit"`
	DueDate       string             `json:"due_date"` // YYYY-MM-DD, credit only
}

func (h *AccountHandler) list(userID uint) ([]models.Account, error) {
	var accounts []models.Account
	err := h.DB.Where("user_id = ?", userID).Order("id").Find(&accounts).Error
	return accounts, err
}

// ListAccounts returns all accounts of the user.
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	accounts, err := h.list(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query accounts")
		return
	}
	util.Success(c, util.Response{"accounts": accounts})
}

// CreateAccount adds an account and returns the new list.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req accountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if req.Balance.IsNegative() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "balance must not be negative")
		return
	}

	account := models.Account{
		UserID:        user.ID,
		AccountNumber: req.AccountNumber,
		Name:          req.Name,
		Institution:   req.Institution,
		AccountType:   req.AccountType,
		Balance:       req.Balance,
	}
	if req.AccountType == models.Credit {
		account.CreditLimit = req.CreditLimit
		if req.DueDate != "" {
			due, err := util.ParseDate(req.DueDate)
			if err != nil {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "due date must be YYYY-MM-DD")
				return
			}
			account.DueDate = &due
		}
	}

	if err := h.DB.Create(&account).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create account")
		return
	}

	accounts, err := h.list(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query accounts")
		return
	}
	util.Success(c, util.Response{"accounts": accounts})
}

func (h *AccountHandler) getOwned(c *gin.Context) (*models.Account, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, false
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid account id")
		return nil, false
	}

	var account models.Account
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query account")
		}
		return nil, false
	}
	return &account, true
}

// GetAccount returns one account of the user.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, ok := h.getOwned(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{"account": account})
}

// UpdateAccount edits an account. A balance change is materialized as a
// correction transaction so the ledger stays consistent with the balance.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	account, ok := h.getOwned(c)
	if !ok {
		return
	}

	var req accountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if req.Balance.IsNegative() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "balance must not be negative")
		return
	}

	previousBalance := account.Balance

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		account.AccountNumber = req.AccountNumber
		account.Name = req.Name
		account.Institution = req.Institution
		account.Balance = req.Balance
		if account.AccountType == models.Credit {
			account.CreditLimit = req.CreditLimit
			if req.DueDate != "" {
				due, err := util.ParseDate(req.DueDate)
				if err != nil {
					return err
				}
				account.DueDate = &due
			}
		}
		if err := tx.Save(account).Error; err != nil {
			return err
		}

		change := account.Balance.Sub(previousBalance)
		if change.IsZero() {
			return nil
		}
		return tx.Create(balanceCorrection(account, change)).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update account")
		return
	}

	util.Success(c, util.Response{"account": account})
}

// balanceCorrection builds the transaction that fills the discrepancy left
// by a manual balance edit. On a debit account a raise is an inflow; on a
// credit account a raise means more owed, which is an outflow.
func balanceCorrection(account *models.Account, change decimal.Decimal) *models.Transaction {
	direction := models.Inflow
	description := fmt.Sprintf("Balance increases $%s", change.Abs())
	if change.IsNegative() {
		direction = models.Outflow
		description = fmt.Sprintf("Balance decreases $%s", change.Abs())
	}
	if account.AccountType == models.Credit {
		if direction == models.Inflow {
			direction = models.Outflow
		} else {
			direction = models.Inflow
		}
	}

	category := models.CategoryOthers
	if direction == models.Inflow {
		category = models.CategoryIncome
	}

	return &models.Transaction{
		UserID:      account.UserID,
		AccountID:   account.ID,
		Description: description,
		Category:    category,
		Direction:   direction,
		Amount:      change.Abs(),
		OccurDate:   time.Now(),
	}
}

// DeleteAccount removes an account and, via cascade, its transactions.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	account, ok := h.getOwned(c)
	if !ok {
		return
	}

	if err := h.DB.Delete(account).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete account")
		return
	}
	util.Success(c, util.Response{"message": "account deleted"})
}

// AccountSummary returns the change and composition percentages of one
// account over the current month.
func (h *AccountHandler) AccountSummary(c *gin.Context) {
	account, ok := h.getOwned(c)
	if !ok {
		return
	}

	scope := finance.Scope{AccountID: account.ID}
	start, end := finance.CurrentPeriod(models.IntervalMonth, time.Now())

	change, err := finance.ChangePercentage(h.DB, scope, models.IntervalMonth, start, end)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute change")
		return
	}
	composition, err := finance.CompositionPercentage(h.DB, scope, start, end)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute composition")
		return
	}

	util.Success(c, util.Response{
		"change_percentage":      change,
		"composition_percentage": composition,
	})
}
