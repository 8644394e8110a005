package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	Update(ctx context.Context, req LeaveRequest) error
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// ListApprovedInRange returns approved requests overlapping [from, to].
	ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error)
}

type LeaveCreditRepository interface {
	Create(ctx context.Context, credit LeaveCredit) (LeaveCredit, error)

	// TotalGranted sums every grant in the employee's ledger.
	TotalGranted(ctx context.Context, employeeID string) (decimal.Decimal, error)
}
