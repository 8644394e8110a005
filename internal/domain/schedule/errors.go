package schedule

import "errors"

var (
	ErrWorkingHoursNotFound = errors.New("working hours template not found")
	ErrNoWorkingHours       = errors.New("no working hours defined")
	ErrIncompleteWeek       = errors.New("working hours must define exactly one entry per weekday")
	ErrZeroScheduledHours   = errors.New("scheduled hours are zero for an open day")
)
