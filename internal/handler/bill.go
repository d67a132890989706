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

// BillHandler serves pending bills and the overdue messages the sweep
// job leaves behind.
type BillHandler struct {
	DB *gorm.DB
}

func NewBillHandler(db *gorm.DB) *BillHandler {
	return &BillHandler{DB: db}
}

type createBillReq struct {
	PayAccountID *uint           `json:"pay_account_id"`
	Description  string          `json:"description" binding:"required,max=200"`
	Category     models.Category `json:"category" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	DueDate      string          `json:"due_date" binding:"required"`
}

func (h *BillHandler) list(c *gin.Context, userID uint) {
	var bills []models.Bill
	err := h.DB.Where("user_id = ?", userID).
		Order("due_date ASC, id ASC").
		Find(&bills).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query bills")
		return
	}
	util.Success(c, util.Response{"bills": bills})
}

// ListBills returns the user's pending bills ordered by due date.
func (h *BillHandler) ListBills(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	h.list(c, user.ID)
}

// CreateBill records a new pending bill.
func (h *BillHandler) CreateBill(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createBillReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := util.ValidateCategory(req.Category); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if req.Category == models.CategoryIncome {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "bill category must be an expense category")
		return
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	dueDate, err := util.ParseDate(req.DueDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "due date must be YYYY-MM-DD")
		return
	}

	if req.PayAccountID != nil {
		var account models.Account
		err := h.DB.Where("id = ? AND user_id = ?", *req.PayAccountID, user.ID).First(&account).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "pay account not found")
			return
		}
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query account")
			return
		}
	}

	bill := models.Bill{
		UserID:       user.ID,
		PayAccountID: req.PayAccountID,
		Description:  req.Description,
		Category:     req.Category,
		Amount:       req.Amount,
		DueDate:      dueDate,
	}
	if err := h.DB.Create(&bill).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create bill")
		return
	}

	h.list(c, user.ID)
}

// DeleteBill removes a bill. A bill with a pay account that is not yet
// overdue is settled: deleting it posts a payment transaction on that
// account in the same database transaction.
func (h *BillHandler) DeleteBill(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	billID, err := strconv.Atoi(c.Param("id"))
	if err != nil || billID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid bill id")
		return
	}

	var bill models.Bill
	err = h.DB.Where("id = ? AND user_id = ?", billID, user.ID).First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "bill not found")
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query bill")
		return
	}

	today := finance.DateOf(time.Now())
	payable := bill.PayAccountID != nil && !bill.DueDate.Before(today)

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if payable {
			var account models.Account
			if err := tx.Where("id = ? AND user_id = ?", *bill.PayAccountID, user.ID).
				First(&account).Error; err != nil {
				return err
			}
			payment := models.Transaction{
				UserID:      user.ID,
				AccountID:   account.ID,
				Description: "Payment: " + bill.Description,
				Category:    bill.Category,
				Direction:   models.Outflow,
				Amount:      bill.Amount,
				OccurDate:   time.Now(),
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
			if err := finance.AdjustAccountBalance(tx, &account, payment); err != nil {
				return err
			}
		}
		return tx.Delete(&bill).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete bill")
		return
	}

	h.list(c, user.ID)
}

// OverdueMessages returns the overdue notices created by the latest sweep.
func (h *BillHandler) OverdueMessages(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var messages []models.OverdueBillMessage
	err := h.DB.Where("user_id = ?", user.ID).
		Order("appear_date DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query overdue messages")
		return
	}
	util.Success(c, util.Response{"messages": messages})
}
