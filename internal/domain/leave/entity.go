package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// LeaveRequest covers an inclusive date range. Only approved requests affect
// attendance classification and payroll.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveFrom   time.Time
	LeaveTo     time.Time
	Status      RequestStatus
	IsPaid      bool
	Reason      *string
	DecidedBy   *string
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Covers reports whether the request spans the given calendar day.
func (l LeaveRequest) Covers(day time.Time) bool {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	from := time.Date(l.LeaveFrom.Year(), l.LeaveFrom.Month(), l.LeaveFrom.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(l.LeaveTo.Year(), l.LeaveTo.Month(), l.LeaveTo.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(from) && !d.After(to)
}

// LeaveCredit is one grant in the paid-leave ledger. The available balance is
// sum(grants) minus leave-credit usage recorded on payrolls across all cycles.
type LeaveCredit struct {
	ID         string
	EmployeeID string
	Days       decimal.Decimal
	Note       *string
	GrantedAt  time.Time
	CreatedAt  time.Time
}
