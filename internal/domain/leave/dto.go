package leave

import (
	"time"

	"github.com/kantoria/hr-backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateLeaveRequest struct {
	EmployeeID string  `json:"employee_id"`
	LeaveFrom  string  `json:"leave_from"` // "2006-01-02"
	LeaveTo    string  `json:"leave_to"`   // "2006-01-02"
	IsPaid     bool    `json:"is_paid"`
	Reason     *string `json:"reason"`
}

func (r CreateLeaveRequest) Validate() (from, to time.Time, err error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	from, okFrom := validator.IsValidDate(r.LeaveFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "leave_from", Message: "must be formatted as 2006-01-02"})
	}
	to, okTo := validator.IsValidDate(r.LeaveTo)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "leave_to", Message: "must be formatted as 2006-01-02"})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "leave_to", Message: "must not be before leave_from"})
	}
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return from, to, nil
}

type DecideLeaveRequest struct {
	ID      string `json:"-"`
	Approve bool   `json:"approve"`
}

type GrantLeaveCreditRequest struct {
	EmployeeID string          `json:"employee_id"`
	Days       decimal.Decimal `json:"days"`
	Note       *string         `json:"note"`
}

func (r GrantLeaveCreditRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !r.Days.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "days must be positive"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	LeaveFrom  string  `json:"leave_from"`
	LeaveTo    string  `json:"leave_to"`
	Status     string  `json:"status"`
	IsPaid     bool    `json:"is_paid"`
	Reason     *string `json:"reason"`
}

func ToResponse(l LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		LeaveFrom:  l.LeaveFrom.Format("2006-01-02"),
		LeaveTo:    l.LeaveTo.Format("2006-01-02"),
		Status:     string(l.Status),
		IsPaid:     l.IsPaid,
		Reason:     l.Reason,
	}
}
