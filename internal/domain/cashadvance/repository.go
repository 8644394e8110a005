package cashadvance

import (
	"context"
	"time"
)

type RequestRepository interface {
	CreateRequest(ctx context.Context, req CashAdvanceRequest) (CashAdvanceRequest, error)
	GetRequestByID(ctx context.Context, id string) (CashAdvanceRequest, error)
	UpdateRequestStatus(ctx context.Context, id string, status RequestStatus) error
	ListByEmployee(ctx context.Context, employeeID string) ([]CashAdvanceRequest, error)
	CreateInstallments(ctx context.Context, installments []CashAdvanceInstallment) error
	ListInstallmentsByRequest(ctx context.Context, requestID string) ([]CashAdvanceInstallment, error)
}

type InstallmentRepository interface {
	// ListUnpaidDueInMonth returns unpaid installments of paid_and_closed
	// advances belonging to the employee, due in the given "2006-01" month.
	ListUnpaidDueInMonth(ctx context.Context, employeeID, monthYear string) ([]CashAdvanceInstallment, error)

	// MarkPaid flags one installment as recovered.
	MarkPaid(ctx context.Context, id string, paidDate time.Time) error

	// MarkUnpaid reverts prior recoveries so a payroll recalculation starts
	// from a clean slate.
	MarkUnpaid(ctx context.Context, ids []string) error
}
