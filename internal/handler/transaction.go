package handler

import (
	"errors"
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

// TransactionHandler serves transaction posting and queries.
type TransactionHandler struct {
	DB *gorm.DB
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{DB: db}
}

const latestTransactionLimit = 20

type createTransactionReq struct {
	AccountID   uint                 `json:"account_id" binding:"required"`
	Description string               `json:"description" binding:"required,max=200"`
	Category    models.Category      `json:"category" binding:"required"`
	Direction   models.FlowDirection `json:"direction" binding:"required,oneof=inflow outflow"`
	Amount      decimal.Decimal      `json:"amount" binding:"required"`
	OccurDate   string               `json:"occur_date"` // optional, defaults to now
}

func (h *TransactionHandler) latest(userID uint) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := h.DB.Where("user_id = ?", userID).
		Order("occur_date DESC, id DESC").
		Limit(latestTransactionLimit).
		Find(&txns).Error
	return txns, err
}

// ListTransactions returns the user's most recent transactions.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	txns, err := h.latest(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query transactions")
		return
	}
	util.Success(c, util.Response{"transactions": txns})
}

// CreateTransaction posts a transaction and adjusts the account balance,
// exactly once, inside one database transaction.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := util.ValidateCategory(req.Category); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	occurDate := time.Now()
	if req.OccurDate != "" {
		parsed, err := util.ParseDate(req.OccurDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "occur date must be YYYY-MM-DD")
			return
		}
		occurDate = parsed
	}
	if finance.DateOf(occurDate).After(finance.DateOf(time.Now())) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "occur date must not be in the future")
		return
	}

	var account models.Account
	if err := h.DB.Where("id = ? AND user_id = ?", req.AccountID, user.ID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query account")
		}
		return
	}

	txn := models.Transaction{
		UserID:      user.ID,
		AccountID:   account.ID,
		Description: req.Description,
		Category:    req.Category,
		Direction:   req.Direction,
		Amount:      req.Amount,
		OccurDate:   occurDate,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		return finance.AdjustAccountBalance(tx, &account, txn)
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create transaction")
		return
	}

	txns, err := h.latest(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query transactions")
		return
	}
	util.Success(c, util.Response{"transactions": txns})
}

// IntervalTransactions returns the user's transactions between two dates.
func (h *TransactionHandler) IntervalTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	start, err := util.ParseDate(c.Param("first"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start date must be YYYY-MM-DD")
		return
	}
	end, err := util.ParseDate(c.Param("last"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "end date must be YYYY-MM-DD")
		return
	}

	var txns []models.Transaction
	err = h.DB.Where("user_id = ? AND occur_date >= ? AND occur_date < ?",
		user.ID, start, end.AddDate(0, 0, 1)).
		Order("occur_date DESC, id DESC").
		Find(&txns).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query transactions")
		return
	}
	util.Success(c, util.Response{"transactions": txns})
}

// CategoryTransactions returns the current month's transactions of one
// category, optionally narrowed to an account via ?account_id.
func (h *TransactionHandler) CategoryTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	category := models.Category(c.Param("category"))
	if err := util.ValidateCategory(category); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	start, end := finance.CurrentPeriod(models.IntervalMonth, time.Now())
	q := h.DB.Where("user_id = ? AND category = ? AND occur_date >= ? AND occur_date < ?",
		user.ID, category, start, end.AddDate(0, 0, 1))

	if accountStr := c.Query("account_id"); accountStr != "" {
		accountID, err := strconv.Atoi(accountStr)
		if err != nil || accountID <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid account id")
			return
		}
		q = q.Where("account_id = ?", accountID)
	}

	var txns []models.Transaction
	if err := q.Order("occur_date DESC, id DESC").Find(&txns).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query transactions")
		return
	}
	util.Success(c, util.Response{"transactions": txns})
}

// AccountTransactions returns the latest transactions of one account.
func (h *TransactionHandler) AccountTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	accountID, err := strconv.Atoi(c.Param("id"))
	if err != nil || accountID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid account id")
		return
	}

	var txns []models.Transaction
	err = h.DB.Where("user_id = ? AND account_id = ?", user.ID, accountID).
		Order("occur_date DESC, id DESC").
		Limit(latestTransactionLimit).
		Find(&txns).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query transactions")
		return
	}
	util.Success(c, util.Response{"transactions": txns})
}
