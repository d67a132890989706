package handler

import (
	"net/http"
	"testing"

	"github.com/mikehquan19/bettero-app/internal/models"
)

func TestBudgetLifecycle(t *testing.T) {
	db := testDB(t)
	r, protected := testEngine(t, db)
	budgetHandler := NewBudgetHandler(db)
	protected.GET("/budgets", budgetHandler.ListBudgets)
	protected.POST("/budgets", budgetHandler.CreateBudget)
	protected.GET("/budgets/:interval", budgetHandler.GetBudget)
	protected.DELETE("/budgets/:interval", budgetHandler.DeleteBudget)

	token := registerAndLogin(t, r)

	// no plans yet: every interval block is null
	w := doJSON(t, r, http.MethodGet, "/api/budgets", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	data := decodeData(t, w)
	for _, interval := range models.Intervals {
		if data[string(interval)] != nil {
			t.Errorf("interval %s block = %v, want null", interval, data[string(interval)])
		}
	}

	// create a month plan
	w = doJSON(t, r, http.MethodPost, "/api/budgets", token, map[string]interface{}{
		"interval_type":       "month",
		"recurring_income":    "4000.00",
		"portion_for_expense": "75",
		"category_portion": map[string]string{
			"Housing": "50",
			"Grocery": "20",
			"Others":  "30",
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/budgets/month", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get month status = %d, body %s", w.Code, w.Body.String())
	}

	// a second month plan is rejected
	w = doJSON(t, r, http.MethodPost, "/api/budgets", token, map[string]interface{}{
		"interval_type":       "month",
		"recurring_income":    "3000.00",
		"portion_for_expense": "50",
		"category_portion":    map[string]string{"Others": "100"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate create status = %d, want 400", w.Code)
	}

	// delete then get 404
	if w = doJSON(t, r, http.MethodDelete, "/api/budgets/month", token, nil); w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w = doJSON(t, r, http.MethodGet, "/api/budgets/month", token, nil); w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
}

func TestCreateBudget_PortionsMustSumTo100(t *testing.T) {
	db := testDB(t)
	r, protected := testEngine(t, db)
	budgetHandler := NewBudgetHandler(db)
	protected.POST("/budgets", budgetHandler.CreateBudget)

	token := registerAndLogin(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/budgets", token, map[string]interface{}{
		"interval_type":       "week",
		"recurring_income":    "1000.00",
		"portion_for_expense": "50",
		"category_portion":    map[string]string{"Grocery": "60"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("create status = %d, want 400", w.Code)
	}
}
