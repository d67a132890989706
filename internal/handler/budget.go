package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/mikehquan19/bettero-app/internal/finance"
	"github.com/mikehquan19/bettero-app/internal/models"
	"github.com/mikehquan19/bettero-app/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetHandler serves budget plans and their derived percentages.
type BudgetHandler struct {
	DB *gorm.DB
}

func NewBudgetHandler(db *gorm.DB) *BudgetHandler {
	return &BudgetHandler{DB: db}
}

type budgetPlanReq struct {
	IntervalType      models.Interval                     `json:"interval_type" binding:"required"`
	RecurringIncome   decimal.Decimal                     `json:"recurring_income" binding:"required"`
	PortionForExpense decimal.Decimal                     `json:"portion_for_expense" binding:"required"`
	CategoryPortion   map[models.Category]decimal.Decimal `json:"category_portion" binding:"required"`
}

// budgetDetail is the response block for one interval kind: the plan itself
// plus its composition and progress. A user without a plan for the interval
// gets a nil block, not an error.
func (h *BudgetHandler) budgetDetail(userID uint, interval models.Interval) (util.Response, error) {
	plan, err := finance.PlanFor(h.DB, userID, interval)
	if errors.Is(err, finance.ErrNoBudgetPlan) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	composition, err := finance.CompositionVsGoal(h.DB, userID, interval, now)
	if err != nil {
		return nil, err
	}
	progress, err := finance.ProgressVsBudget(h.DB, userID, interval, now)
	if err != nil {
		return nil, err
	}

	return util.Response{
		"id":              plan.ID,
		"income":          plan.RecurringIncome,
		"expense_portion": plan.PortionForExpense,
		"composition":     composition,
		"progress":        progress,
	}, nil
}

func (h *BudgetHandler) allBudgetDetails(c *gin.Context, userID uint) {
	response := util.Response{}
	for _, interval := range models.Intervals {
		detail, err := h.budgetDetail(userID, interval)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute budget")
			return
		}
		response[string(interval)] = detail
	}
	util.Success(c, response)
}

// ListBudgets returns the budget block of every interval kind.
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	h.allBudgetDetails(c, user.ID)
}

// CreateBudget validates and stores a new plan, returning all blocks.
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req budgetPlanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	plan := models.BudgetPlan{
		UserID:            user.ID,
		IntervalType:      req.IntervalType,
		RecurringIncome:   req.RecurringIncome,
		PortionForExpense: req.PortionForExpense,
		CategoryPortion:   req.CategoryPortion,
	}
	if err := finance.ValidatePlan(h.DB, plan, 0); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := h.DB.Create(&plan).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create budget plan")
		return
	}

	h.allBudgetDetails(c, user.ID)
}

// GetBudget returns the block of one interval kind.
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	interval := models.Interval(c.Param("interval"))
	if err := util.ValidateInterval(interval); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	detail, err := h.budgetDetail(user.ID, interval)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute budget")
		return
	}
	if detail == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "no budget plan for this interval")
		return
	}
	util.Success(c, detail)
}

// UpdateBudget replaces the plan of one interval kind.
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	interval := models.Interval(c.Param("interval"))
	if err := util.ValidateInterval(interval); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	plan, err := finance.PlanFor(h.DB, user.ID, interval)
	if errors.Is(err, finance.ErrNoBudgetPlan) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "no budget plan for this interval")
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to query budget plan")
		return
	}

	var req budgetPlanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if req.IntervalType != interval {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "interval type does not match the plan")
		return
	}

	plan.RecurringIncome = req.RecurringIncome
	plan.PortionForExpense = req.PortionForExpense
	plan.CategoryPortion = req.CategoryPortion
	if err := finance.ValidatePlan(h.DB, plan, plan.ID); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := h.DB.Save(&plan).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update budget plan")
		return
	}

	h.allBudgetDetails(c, user.ID)
}

// DeleteBudget removes the plan of one interval kind.
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	interval := models.Interval(c.Param("interval"))
	if err := util.ValidateInterval(interval); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	result := h.DB.Where("user_id = ? AND interval_type = ?", user.ID, interval).
		Delete(&models.BudgetPlan{})
	if result.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete budget plan")
		return
	}
	if result.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "no budget plan for this interval")
		return
	}
	util.Success(c, util.Response{"message": "budget plan deleted"})
}
