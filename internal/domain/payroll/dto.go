package payroll

import (
	"time"

	"github.com/kantoria/hr-backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateCycleRequest struct {
	FromDate string `json:"from_date"` // "2006-01-02"
	ToDate   string `json:"to_date"`   // "2006-01-02"
}

// Validate parses the cycle range. The policy window cap is enforced by the
// service, which knows the configured limit.
func (r CreateCycleRequest) Validate() (from, to time.Time, err error) {
	var errs validator.ValidationErrors
	from, okFrom := validator.IsValidDate(r.FromDate)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "must be formatted as 2006-01-02"})
	}
	to, okTo := validator.IsValidDate(r.ToDate)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "must be formatted as 2006-01-02"})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "must not be before from_date"})
	}
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return from, to, nil
}

type ManualCorrectionRequest struct {
	PayrollID  string          `json:"-"`
	Correction decimal.Decimal `json:"correction"`
}

type CycleResponse struct {
	ID           string       `json:"id"`
	FromDate     string       `json:"from_date"`
	ToDate       string       `json:"to_date"`
	Processing   bool         `json:"processing"`
	Processed    bool         `json:"processed"`
	Success      int          `json:"success"`
	Failed       int          `json:"failed"`
	FailedReport FailedReport `json:"failed_report"`
}

type DeductionResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Amount        string  `json:"amount"`
	InstallmentID *string `json:"installment_id,omitempty"`
}

type PayrollResponse struct {
	ID                            string              `json:"id"`
	EmployeeID                    string              `json:"employee_id"`
	PayrollCycleID                string              `json:"payroll_cycle_id"`
	SalaryAmount                  string              `json:"salary_amount"`
	TotalDays                     int                 `json:"total_days"`
	TotalWorkingDays              int                 `json:"total_working_days"`
	TotalDaysWorked               int                 `json:"total_days_worked"`
	TotalAbsences                 int                 `json:"total_absences"`
	TotalIncompletes              string              `json:"total_incompletes"`
	TotalLates                    int                 `json:"total_lates"`
	ToBeDeductedFromLeaveCredits  string              `json:"to_be_deducted_from_leave_credits"`
	ToBeDeductedFromCurrentSalary string              `json:"to_be_deducted_from_current_salary"`
	ManualCorrection              string              `json:"manual_correction"`
	TotalDeduction                string              `json:"total_deduction"`
	TotalReceivable               string              `json:"total_receivable"`
	Paid                          bool                `json:"paid"`
	Deductions                    []DeductionResponse `json:"deductions,omitempty"`
}

func ToCycleResponse(c PayrollCycle) CycleResponse {
	return CycleResponse{
		ID:           c.ID,
		FromDate:     c.FromDate.Format("2006-01-02"),
		ToDate:       c.ToDate.Format("2006-01-02"),
		Processing:   c.Processing,
		Processed:    c.Processed,
		Success:      c.Success,
		Failed:       c.Failed,
		FailedReport: c.FailedReport,
	}
}

func ToPayrollResponse(p Payroll, deductions []PayrollDeduction) PayrollResponse {
	resp := PayrollResponse{
		ID:                            p.ID,
		EmployeeID:                    p.EmployeeID,
		PayrollCycleID:                p.PayrollCycleID,
		SalaryAmount:                  p.SalaryAmount.String(),
		TotalDays:                     p.TotalDays,
		TotalWorkingDays:              p.TotalWorkingDays,
		TotalDaysWorked:               p.TotalDaysWorked,
		TotalAbsences:                 p.TotalAbsences,
		TotalIncompletes:              p.TotalIncompletes.String(),
		TotalLates:                    p.TotalLates,
		ToBeDeductedFromLeaveCredits:  p.ToBeDeductedFromLeaveCredits.String(),
		ToBeDeductedFromCurrentSalary: p.ToBeDeductedFromCurrentSalary.String(),
		ManualCorrection:              p.ManualCorrection.String(),
		TotalDeduction:                p.TotalDeduction.String(),
		TotalReceivable:               p.TotalReceivable.String(),
		Paid:                          p.Paid,
	}
	for _, d := range deductions {
		resp.Deductions = append(resp.Deductions, DeductionResponse{
			ID:            d.ID,
			Title:         d.Title,
			Amount:        d.Amount.String(),
			InstallmentID: d.InstallmentID,
		})
	}
	return resp
}
