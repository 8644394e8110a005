package daterange

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvertedRange = errors.New("range end date is before start date")
	ErrRangeTooLong  = errors.New("range exceeds the allowed number of days")
)

// Normalize truncates a timestamp to its calendar day in UTC.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DayCount returns the number of calendar days in [from, to] inclusive.
func DayCount(from, to time.Time) int {
	from, to = Normalize(from), Normalize(to)
	return int(to.Sub(from).Hours()/24) + 1
}

// Days enumerates every calendar day in [from, to] inclusive. The iteration
// count is derived from the range itself; a range longer than maxDays fails
// instead of being silently truncated.
func Days(from, to time.Time, maxDays int) ([]time.Time, error) {
	from, to = Normalize(from), Normalize(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvertedRange, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	count := DayCount(from, to)
	if maxDays > 0 && count > maxDays {
		return nil, fmt.Errorf("%w: %d days, limit %d", ErrRangeTooLong, count, maxDays)
	}

	days := make([]time.Time, 0, count)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// MonthBounds returns the first and last day of a calendar month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}
