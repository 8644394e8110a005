package holiday

import "errors"

var (
	ErrHolidayNotFound = errors.New("public holiday not found")
	ErrHolidayExists   = errors.New("a public holiday already exists on this date")
)
