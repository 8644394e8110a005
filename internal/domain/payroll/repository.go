package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRepository defines data access for cycles, payrolls and their
// deduction lines. One Payroll per (employee, cycle) is enforced by
// GetByEmployeeAndCycle at the call sites.
type PayrollRepository interface {
	// Cycles
	CreateCycle(ctx context.Context, cycle PayrollCycle) (PayrollCycle, error)
	GetCycleByID(ctx context.Context, id string) (PayrollCycle, error)
	ListCycles(ctx context.Context) ([]PayrollCycle, error)
	// ListUnprocessedCycles returns cycles whose range ended before the given
	// date and that were never processed.
	ListUnprocessedCycles(ctx context.Context, before time.Time) ([]PayrollCycle, error)
	UpdateCycle(ctx context.Context, cycle PayrollCycle) error

	// Payrolls
	CreatePayroll(ctx context.Context, p Payroll) (Payroll, error)
	UpdatePayroll(ctx context.Context, p Payroll) error
	GetPayrollByID(ctx context.Context, id string) (Payroll, error)
	GetByEmployeeAndCycle(ctx context.Context, employeeID, cycleID string) (*Payroll, error)
	ListByCycle(ctx context.Context, cycleID string) ([]Payroll, error)
	MarkPaid(ctx context.Context, id string) error

	// Deductions
	CreateDeductions(ctx context.Context, deductions []PayrollDeduction) error
	DeleteDeductionsByPayroll(ctx context.Context, payrollID string) error
	ListDeductionsByPayroll(ctx context.Context, payrollID string) ([]PayrollDeduction, error)

	// SumLeaveCreditsUsed aggregates leave-credit usage recorded on the
	// employee's payrolls across all cycles, excluding one payroll when it is
	// being recalculated.
	SumLeaveCreditsUsed(ctx context.Context, employeeID string, excludePayrollID *string) (decimal.Decimal, error)
}
