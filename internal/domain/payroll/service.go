package payroll

import "context"

// PayrollService defines business logic for payroll cycles and records.
type PayrollService interface {
	CreateCycle(ctx context.Context, req CreateCycleRequest) (CycleResponse, error)
	GetCycle(ctx context.Context, id string) (CycleResponse, error)
	ListCycles(ctx context.Context) ([]CycleResponse, error)

	// ProcessCycle starts the fleet-wide computation in the background. The
	// cycle's counters and failure report become visible once it completes.
	ProcessCycle(ctx context.Context, cycleID string) error

	// RecalculatePayroll recomputes one payroll in place, resetting any
	// installments it previously recovered.
	RecalculatePayroll(ctx context.Context, payrollID string) (PayrollResponse, error)

	// ApplyManualCorrection adjusts the receivable by the correction delta
	// only; it never triggers a recomputation.
	ApplyManualCorrection(ctx context.Context, req ManualCorrectionRequest) (PayrollResponse, error)

	GetPayroll(ctx context.Context, id string) (PayrollResponse, error)
	ListPayrollsByCycle(ctx context.Context, cycleID string) ([]PayrollResponse, error)
	MarkPaid(ctx context.Context, id string) error
}
