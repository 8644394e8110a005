package cashadvance

import (
	"time"

	"github.com/kantoria/hr-backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateCashAdvanceRequest struct {
	EmployeeID string          `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
	Months     int             `json:"months"`
	FirstMonth string          `json:"first_month"` // "2006-01", defaults to next month
}

// Validate returns the month the repayment schedule starts in.
func (r CreateCashAdvanceRequest) Validate() (time.Time, error) {
	var errs validator.ValidationErrors
	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if r.Months < 1 || r.Months > 36 {
		errs = append(errs, validator.ValidationError{Field: "months", Message: "must be between 1 and 36"})
	}

	firstMonth := time.Now().UTC().AddDate(0, 1, 0)
	if r.FirstMonth != "" {
		parsed, err := time.Parse("2006-01", r.FirstMonth)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "first_month", Message: "must be formatted as 2006-01"})
		} else {
			firstMonth = parsed
		}
	}
	if len(errs) > 0 {
		return time.Time{}, errs
	}
	return firstMonth, nil
}

type DecideCashAdvanceRequest struct {
	ID      string `json:"-"`
	Approve bool   `json:"approve"`
}

type InstallmentResponse struct {
	ID                string          `json:"id"`
	MonthYear         string          `json:"month_year"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	IsPaid            bool            `json:"is_paid"`
	PaidDate          *time.Time      `json:"paid_date,omitempty"`
}

type CashAdvanceResponse struct {
	ID           string                `json:"id"`
	EmployeeID   string                `json:"employee_id"`
	Amount       decimal.Decimal       `json:"amount"`
	Status       RequestStatus         `json:"status"`
	Installments []InstallmentResponse `json:"installments,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

func ToResponse(req CashAdvanceRequest, installments []CashAdvanceInstallment) CashAdvanceResponse {
	resp := CashAdvanceResponse{
		ID:         req.ID,
		EmployeeID: req.EmployeeID,
		Amount:     req.Amount,
		Status:     req.Status,
		CreatedAt:  req.CreatedAt,
	}
	for _, inst := range installments {
		resp.Installments = append(resp.Installments, InstallmentResponse{
			ID:                inst.ID,
			MonthYear:         inst.MonthYear,
			InstallmentAmount: inst.InstallmentAmount,
			IsPaid:            inst.IsPaid,
			PaidDate:          inst.PaidDate,
		})
	}
	return resp
}
