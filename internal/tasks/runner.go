// Package tasks holds the periodic maintenance jobs that mutate ledger
// state: credit due-date rollover, stock price refresh and portfolio
// valuation, stale-record pruning, and the overdue bill sweep. Each job is
// stateless across runs and idempotent through date-based filtering, so a
// repeated run on the same day is a no-op.
package tasks

import (
	"time"

	"github.com/mikehquan19/bettero-app/internal/finance"
	"github.com/mikehquan19/bettero-app/internal/market"

	"gorm.io/gorm"
)

// Runner owns the collaborators the maintenance jobs need.
type Runner struct {
	db       *gorm.DB
	provider market.Provider

	// now is swappable so tests can pin the clock
	now func() time.Time
}

func NewRunner(db *gorm.DB, provider market.Provider) *Runner {
	return &Runner{db: db, provider: provider, now: time.Now}
}

func (r *Runner) today() time.Time {
	return finance.DateOf(r.now())
}

// addOneCalendarMonth steps d forward a month, clamping the day to the
// target month's length (Jan 31 -> Feb 28/29) and rolling December into
// January of the next year.
func addOneCalendarMonth(d time.Time) time.Time {
	year, month := d.Year(), d.Month()+1
	if month > time.December {
		month = time.January
		year++
	}
	day := d.Day()
	if last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day(); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// firstOfMonth returns the first day of d's month.
func firstOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
