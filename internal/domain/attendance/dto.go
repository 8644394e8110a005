package attendance

import (
	"time"

	"github.com/kantoria/hr-backoffice-go/internal/pkg/validator"
)

type CreateAttendanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	CheckIn    string  `json:"check_in"`  // "2006-01-02 15:04:05"
	CheckOut   string  `json:"check_out"` // "2006-01-02 15:04:05"
	Note       *string `json:"note"`
}

const timestampLayout = "2006-01-02 15:04:05"

// Validate parses and cross-checks the manual entry timestamps.
func (r CreateAttendanceRequest) Validate() (checkIn, checkOut time.Time, err error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}

	checkIn, inErr := time.Parse(timestampLayout, r.CheckIn)
	if inErr != nil {
		errs = append(errs, validator.ValidationError{Field: "check_in", Message: "must be formatted as 2006-01-02 15:04:05"})
	}
	checkOut, outErr := time.Parse(timestampLayout, r.CheckOut)
	if outErr != nil {
		errs = append(errs, validator.ValidationError{Field: "check_out", Message: "must be formatted as 2006-01-02 15:04:05"})
	}
	if inErr == nil && outErr == nil {
		if !checkOut.After(checkIn) {
			errs = append(errs, validator.ValidationError{Field: "check_out", Message: "must be after check_in"})
		}
		if validator.IsFutureDate(checkIn) {
			errs = append(errs, validator.ValidationError{Field: "check_in", Message: "cannot be in the future"})
		}
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return checkIn, checkOut, nil
}

type UpdateAttendanceRequest struct {
	ID       string  `json:"-"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Note     *string `json:"note"`
}

type MonthRosterRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

func (r MonthRosterRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RangeRosterRequest struct {
	EmployeeID string `json:"employee_id"`
	From       string `json:"from"` // "2006-01-02"
	To         string `json:"to"`   // "2006-01-02"
}

func (r RangeRosterRequest) Validate() (from, to time.Time, err error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	from, okFrom := validator.IsValidDate(r.From)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must be formatted as 2006-01-02"})
	}
	to, okTo := validator.IsValidDate(r.To)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must be formatted as 2006-01-02"})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must not be before from"})
	}
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return from, to, nil
}

type ReconcileDayRequest struct {
	EmployeeID string `json:"employee_id"`
	Day        string `json:"day"` // "2006-01-02"
}

func (r ReconcileDayRequest) Validate() (time.Time, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	day, ok := validator.IsValidDate(r.Day)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "day", Message: "must be formatted as 2006-01-02"})
	}
	if len(errs) > 0 {
		return time.Time{}, errs
	}
	return day, nil
}

type AttendanceResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	CheckIn           *string `json:"check_in"`
	CheckOut          *string `json:"check_out"`
	TotalHours        float64 `json:"total_hours"`
	Status            Status  `json:"status"`
	ProRatedDeduction string  `json:"pro_rated_deduction"`
	Type              Type    `json:"type"`
	Note              *string `json:"note"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type RosterResponse struct {
	EmployeeID string      `json:"employee_id"`
	From       string      `json:"from"`
	To         string      `json:"to"`
	Days       []DayRecord `json:"days"`
}
