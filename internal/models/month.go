package models

import "time"

// MonthKey formats t as "YYYY-MM", the key used for per-month aggregates.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthStart returns the first instant of t's calendar month in UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of t's calendar month in UTC.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// PrevMonth returns the calendar month immediately before (year, month).
func PrevMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// MonthsBetween returns the first-of-month dates of every calendar month in
// [start, end], inclusive of both endpoints. A start and end inside the same
// month yields exactly one entry. Returns nil when end precedes start.
func MonthsBetween(start, end time.Time) []time.Time {
	first := MonthStart(start)
	last := MonthStart(end)
	if last.Before(first) {
		return nil
	}

	var months []time.Time
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}
