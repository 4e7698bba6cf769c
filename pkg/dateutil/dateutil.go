package dateutil

import "time"

// MonthLabel formats a date as the calendar-month label used to key
// invoices, e.g. "March 2025".
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}

// ParseMonthLabel parses a month label back into the first day of that month.
func ParseMonthLabel(label string) (time.Time, error) {
	return time.Parse("January 2006", label)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay clamps a configured day-of-month to what the target month
// actually has, so billing day 31 lands on Feb 28/29 rather than rolling
// into the next month.
func ClampDay(year int, month time.Month, day int) int {
	if day < 1 {
		return 1
	}
	if last := DaysInMonth(year, month); day > last {
		return last
	}
	return day
}

// DueDate computes an invoice due date: the billing day of the month
// after the given date, clamped to that month's length.
func DueDate(now time.Time, billingDay int) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	next := first.AddDate(0, 1, 0)
	day := ClampDay(next.Year(), next.Month(), billingDay)
	return time.Date(next.Year(), next.Month(), day, 0, 0, 0, 0, now.Location())
}
