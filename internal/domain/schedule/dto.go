package schedule

import (
	"fmt"

	"github.com/kantoria/hr-backoffice-go/internal/pkg/validator"
)

type OpeningHoursRequest struct {
	Day    int    `json:"day"`
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

type CreateWorkingHoursRequest struct {
	Title string                `json:"title"`
	Days  []OpeningHoursRequest `json:"days"`
}

// Validate checks the request and returns the validated weekly array with
// total hours precomputed from open/close for every open day.
func (r CreateWorkingHoursRequest) Validate() (WeekDays, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if len(r.Days) != 7 {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "exactly 7 day entries are required"})
		return WeekDays{}, errs
	}

	entries := make([]OpeningHours, 0, 7)
	for _, d := range r.Days {
		entry := OpeningHours{Day: d.Day, Closed: d.Closed}
		if !d.Closed {
			hours, err := HoursBetween(d.Open, d.Close)
			if err != nil {
				errs = append(errs, validator.ValidationError{
					Field:   fmt.Sprintf("days[%d]", d.Day),
					Message: err.Error(),
				})
				continue
			}
			entry.Open = d.Open
			entry.Close = d.Close
			entry.TotalHours = hours
		}
		entries = append(entries, entry)
	}
	if len(errs) > 0 {
		return WeekDays{}, errs
	}

	week, err := NewWeekDays(entries)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "days", Message: err.Error()})
		return WeekDays{}, errs
	}
	return week, nil
}

type WorkingHoursResponse struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Days  []OpeningHours `json:"days"`
}

func ToResponse(wh WorkingHours) WorkingHoursResponse {
	return WorkingHoursResponse{
		ID:    wh.ID,
		Title: wh.Title,
		Days:  wh.Days[:],
	}
}
