package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations.
type AttendanceService interface {
	// Create records a manual attendance entry, classifying it against the
	// employee's working schedule.
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)

	// Update fixes a manual record's timestamps and reclassifies it.
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (AttendanceResponse, error)

	// MonthRoster returns one classified row per day of a calendar month.
	MonthRoster(ctx context.Context, req MonthRosterRequest) (RosterResponse, error)

	// RangeRoster returns one classified row per day of an arbitrary range.
	RangeRoster(ctx context.Context, req RangeRosterRequest) (RosterResponse, error)

	// ReconcileDay converts one employee's raw biometric events for a day
	// into the canonical attendance record.
	ReconcileDay(ctx context.Context, employeeID string, day time.Time) (AttendanceResponse, error)

	// ReconcileAll runs ReconcileDay across the active workforce in the
	// background and reports how many employees were queued.
	ReconcileAll(ctx context.Context, day time.Time) (int, error)
}
