package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status classifies one calendar day of attendance.
type Status string

const (
	StatusOff        Status = "off"
	StatusAbsent     Status = "absent"
	StatusComplete   Status = "complete"
	StatusLate       Status = "late"
	StatusIncomplete Status = "incomplete"
)

// Type distinguishes operator-entered records from biometric reconciliation.
type Type string

const (
	TypeManual Type = "manual"
	TypeAuto   Type = "auto"
)

// Attendance is the canonical record of one employee day. At most one record
// exists per employee per calendar day; the reconciler replaces a stale record
// rather than updating it in place.
type Attendance struct {
	ID                string
	EmployeeID        string
	CheckIn           *time.Time
	CheckOut          *time.Time
	TotalHours        float64
	Status            Status
	ProRatedDeduction decimal.Decimal
	Type              Type
	Note              *string
	AddedBy           *string
	ModifiedBy        *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// BiometricEvent is a raw hardware clock event awaiting reconciliation.
type BiometricEvent struct {
	ID          string
	EmployeeID  string
	RecordedAt  time.Time
	DeviceID    *string
	IsProcessed bool
	CreatedAt   time.Time
}

// DayRecord is one classified calendar day of a roster, gap-filled for days
// without an underlying attendance row.
type DayRecord struct {
	RecordID          *string         `json:"record_id"`
	EmployeeID        string          `json:"employee_id"`
	Day               time.Time       `json:"day"`
	Status            Status          `json:"status"`
	CheckIn           *time.Time      `json:"check_in"`
	CheckOut          *time.Time      `json:"check_out"`
	Note              *string         `json:"note"`
	HoursWorked       float64         `json:"hours_worked"`
	ProRatedDeduction decimal.Decimal `json:"pro_rated_deduction"`
	AddedBy           *string         `json:"added_by"`
	ModifiedBy        *string         `json:"modified_by"`
	ModifiedDate      *time.Time      `json:"modified_date"`
}
