package util

import (
	"fmt"
	"time"

	"github.com/mikehquan19/bettero-app/internal/models"

	"github.com/shopspring/decimal"
)

var maxAmount = decimal.NewFromInt(10000000)

// ValidateAmount checks that an amount is positive and below the cap.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", amount)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("amount too large, got %s", amount)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return t, nil
}

// ValidateCategory checks the category against the enumerated set.
func ValidateCategory(category models.Category) error {
	if category == "" {
		return fmt.Errorf("category is empty")
	}
	if !models.ValidCategory(category) {
		return fmt.Errorf("unknown category %q", category)
	}
	return nil
}

// ValidateInterval checks the interval kind against the enumerated set.
func ValidateInterval(interval models.Interval) error {
	if !models.ValidInterval(interval) {
		return fmt.Errorf("unknown interval type %q", interval)
	}
	return nil
}
