package models

// Category is a fixed spending bucket used for transaction classification
// and budget allocation. The set is closed; handlers validate against it.
type Category string

const (
	CategoryIncome       Category = "Income"
	CategoryHousing      Category = "Housing"
	CategoryAutomobile   Category = "Automobile"
	CategoryMedical      Category = "Medical"
	CategorySubscription Category = "Subscription"
	CategoryGrocery      Category = "Grocery"
	CategoryDining       Category = "Dining"
	CategoryShopping     Category = "Shopping"
	CategoryGas          Category = "Gas"
	CategoryOthers       Category = "Others"
)

// ExpenseCategories lists every expense bucket in display order.
// Aggregation zero-fills this set so callers can rely on key presence.
var ExpenseCategories = []Category{
	CategoryHousing,
	CategoryAutomobile,
	CategoryMedical,
	CategorySubscription,
	CategoryGrocery,
	CategoryDining,
	CategoryShopping,
	CategoryGas,
	CategoryOthers,
}

// ValidCategory reports whether c is one of the enumerated categories.
func ValidCategory(c Category) bool {
	if c == CategoryIncome {
		return true
	}
	for _, ec := range ExpenseCategories {
		if c == ec {
			return true
		}
	}
	return false
}

// FlowDirection tags a transaction as money in or money out.
// Direction is explicit; category stays purely descriptive.
type FlowDirection string

const (
	Inflow  FlowDirection = "inflow"
	Outflow FlowDirection = "outflow"
)

// Interval is the granularity over which aggregation and budgets are scoped.
type Interval string

const (
	IntervalMonth  Interval = "month"
	IntervalBiWeek Interval = "bi_week"
	IntervalWeek   Interval = "week"
)

// Intervals lists every interval kind in display order.
var Intervals = []Interval{IntervalMonth, IntervalBiWeek, IntervalWeek}

// ValidInterval reports whether iv is one of the enumerated interval kinds.
func ValidInterval(iv Interval) bool {
	return iv == IntervalMonth || iv == IntervalBiWeek || iv == IntervalWeek
}

// AccountType distinguishes debit accounts from credit accounts.
type AccountType string

const (
	Debit  AccountType = "Debit"
	Credit AccountType = "Credit"
)
