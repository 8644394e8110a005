package cashadvance

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestStatus string

const (
	StatusPending       RequestStatus = "pending"
	StatusApproved      RequestStatus = "approved"
	StatusPaidAndClosed RequestStatus = "paid_and_closed"
	StatusRejected      RequestStatus = "rejected"
)

// CashAdvanceRequest is an advance the employee repays through payroll.
type CashAdvanceRequest struct {
	ID         string
	EmployeeID string
	Amount     decimal.Decimal
	Status     RequestStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CashAdvanceInstallment is one scheduled repayment. MonthYear is "2006-01";
// an installment is marked paid exactly once, by the payroll cycle that
// recovers it.
type CashAdvanceInstallment struct {
	ID                   string
	CashAdvanceRequestID string
	MonthYear            string
	InstallmentAmount    decimal.Decimal
	IsPaid               bool
	PaidDate             *time.Time
	CreatedAt            time.Time
}
