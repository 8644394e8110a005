package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrExistsForDay       = errors.New("attendance already exists for this day")

	// Biometric reconciliation errors
	ErrNoCheckInFound  = errors.New("no unprocessed check-in event found for the day")
	ErrNoCheckOutFound = errors.New("no unprocessed check-out event found for the day")
	// ErrAlreadyProcessed signals an idempotent no-op, not a hard failure.
	ErrAlreadyProcessed = errors.New("biometric events already reconciled for this day")
)
