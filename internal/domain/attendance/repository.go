package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. Uniqueness
// per employee-day is enforced by FindByEmployeeAndDay at the call sites, not
// by a database constraint.
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)
	Update(ctx context.Context, att Attendance) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Attendance, error)

	// FindByEmployeeAndDateRange returns records whose check-in falls in
	// [from, to] inclusive, ordered by check-in.
	FindByEmployeeAndDateRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)

	// FindByEmployeeAndDay returns the record for one calendar day, or nil.
	FindByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*Attendance, error)
}

// BiometricEventRepository defines data access for raw clock events.
type BiometricEventRepository interface {
	// FirstUnprocessed returns the earliest unprocessed event in [from, to].
	FirstUnprocessed(ctx context.Context, employeeID string, from, to time.Time) (*BiometricEvent, error)

	// LastUnprocessed returns the latest unprocessed event in [from, to].
	LastUnprocessed(ctx context.Context, employeeID string, from, to time.Time) (*BiometricEvent, error)

	// MarkProcessedInRange flags every unprocessed event in [from, to] so it
	// is never reconsidered.
	MarkProcessedInRange(ctx context.Context, employeeID string, from, to time.Time) error

	Create(ctx context.Context, event BiometricEvent) (BiometricEvent, error)
}
