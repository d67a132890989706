// Package finance implements the period-aggregation, budgeting, and balance
// engine of the app. All monetary math uses decimals; dates are handled at
// day granularity in UTC.
package finance

import (
	"time"

	"github.com/mikehquan19/bettero-app/internal/models"
)

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CurrentPeriod computes the [start, end] date bounds of the period of the
// given kind containing today. Months span the calendar month; weeks end on
// the upcoming Sunday; bi-weeks are the 14 days ending on that Sunday.
func CurrentPeriod(interval models.Interval, today time.Time) (time.Time, time.Time) {
	today = DateOf(today)

	if interval == models.IntervalMonth {
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(today.Year(), today.Month(), daysInMonth(today.Year(), today.Month()), 0, 0, 0, 0, time.UTC)
		return start, end
	}

	span := 7
	if interval == models.IntervalBiWeek {
		span = 14
	}
	daysUntilSunday := (7 - int(today.Weekday())) % 7
	end := today.AddDate(0, 0, daysUntilSunday)
	start := end.AddDate(0, 0, -(span - 1))
	return start, end
}

// PreviousPeriod computes the bounds of the period immediately preceding
// [start, end]. Weeks and bi-weeks shift back by their fixed width. Months
// step back by the length of the adjacent month on each bound, which aligns
// "same day of month" rather than a fixed day offset, so the previous span
// may differ in day count from the current one.
func PreviousPeriod(interval models.Interval, start, end time.Time) (time.Time, time.Time) {
	start, end = DateOf(start), DateOf(end)

	if interval != models.IntervalMonth {
		span := 7
		if interval == models.IntervalBiWeek {
			span = 14
		}
		return start.AddDate(0, 0, -span), end.AddDate(0, 0, -span)
	}

	prevYear, prevMonth := start.Year(), start.Month()-1
	if prevMonth == 0 {
		prevMonth = time.December
		prevYear--
	}

	prevStart := start.AddDate(0, 0, -daysInMonth(prevYear, prevMonth))
	prevEnd := end.AddDate(0, 0, -daysInMonth(start.Year(), start.Month()))
	return prevStart, prevEnd
}

// PeriodOrCurrent passes explicit bounds through unchanged, falling back to
// the current period of the given kind when they are zero.
func PeriodOrCurrent(interval models.Interval, start, end, today time.Time) (time.Time, time.Time) {
	if start.IsZero() || end.IsZero() {
		return CurrentPeriod(interval, today)
	}
	return DateOf(start), DateOf(end)
}
