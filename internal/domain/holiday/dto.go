package holiday

import (
	"time"

	"github.com/kantoria/hr-backoffice-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Date string `json:"date"` // "2006-01-02"
	Name string `json:"name"`
}

func (r CreateHolidayRequest) Validate() (time.Time, error) {
	var errs validator.ValidationErrors
	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be formatted as 2006-01-02"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(errs) > 0 {
		return time.Time{}, errs
	}
	return date, nil
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

func ToResponse(h PublicHoliday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID,
		Date: h.Date.Format("2006-01-02"),
		Name: h.Name,
	}
}
