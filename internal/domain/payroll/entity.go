package payroll

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// FailedItem records one employee whose computation failed during a batch run.
type FailedItem struct {
	EmployeeID string `json:"employee_id"`
	Message    string `json:"message"`
}

// FailedReport persists as JSONB on the cycle row.
type FailedReport []FailedItem

func (r FailedReport) Value() (driver.Value, error) {
	if r == nil {
		return json.Marshal(FailedReport{})
	}
	return json.Marshal(r)
}

func (r *FailedReport) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for FailedReport")
	}
	return json.Unmarshal(raw, r)
}

// PayrollCycle is one aggregation period. It owns at most one Payroll per
// employee; Processed flips once every employee has been attempted.
type PayrollCycle struct {
	ID           string
	FromDate     time.Time
	ToDate       time.Time
	Processing   bool
	Processed    bool
	Success      int
	Failed       int
	FailedReport FailedReport
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Payroll is the per-employee result of one cycle computation.
type Payroll struct {
	ID                            string
	EmployeeID                    string
	PayrollCycleID                string
	SalaryID                      string
	SalaryAmount                  decimal.Decimal
	TotalDays                     int
	TotalWorkingDays              int
	TotalDaysWorked               int
	TotalAbsences                 int
	TotalIncompletes              decimal.Decimal
	TotalLates                    int
	ToBeDeductedFromLeaveCredits  decimal.Decimal
	ToBeDeductedFromCurrentSalary decimal.Decimal
	ManualCorrection              decimal.Decimal
	TotalDeduction                decimal.Decimal
	TotalReceivable               decimal.Decimal
	Paid                          bool
	CreatedAt                     time.Time
	UpdatedAt                     time.Time
}

// PayrollDeduction is one itemized line. Deductions are replaced wholesale on
// recalculation. InstallmentID links a recovered cash-advance installment.
type PayrollDeduction struct {
	ID            string
	PayrollID     string
	Title         string
	Amount        decimal.Decimal
	InstallmentID *string
	CreatedAt     time.Time
}
