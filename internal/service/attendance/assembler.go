package attendance

import (
	"fmt"
	"time"

	"github.com/kantoria/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/holiday"
	"github.com/kantoria/hr-backoffice-go/internal/domain/leave"
	"github.com/kantoria/hr-backoffice-go/internal/domain/schedule"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/daterange"
	"github.com/shopspring/decimal"
)

// RosterInput carries the pre-loaded source data for one employee and range.
type RosterInput struct {
	EmployeeID string
	Rows       []attendance.Attendance
	Holidays   []holiday.PublicHoliday
	Leaves     []leave.LeaveRequest
	Schedule   schedule.WorkingHours
}

// BuildMonthRoster emits one classified record per day of a calendar month.
func BuildMonthRoster(year int, month time.Month, input RosterInput) ([]attendance.DayRecord, error) {
	from, to := daterange.MonthBounds(year, month)
	return BuildRangeRoster(from, to, input)
}

// BuildRangeRoster emits one classified record per day of [from, to]
// inclusive. Days without an attendance row default to absent; closed
// weekdays and public holidays force off regardless of any underlying row.
func BuildRangeRoster(from, to time.Time, input RosterInput) ([]attendance.DayRecord, error) {
	days, err := daterange.Days(from, to, 0)
	if err != nil {
		return nil, fmt.Errorf("build roster range: %w", err)
	}

	holidaySet := make(map[time.Time]bool, len(input.Holidays))
	for _, h := range input.Holidays {
		holidaySet[daterange.Normalize(h.Date)] = true
	}

	rowsByDay := make(map[time.Time]attendance.Attendance, len(input.Rows))
	for _, row := range input.Rows {
		if row.CheckIn == nil {
			continue
		}
		rowsByDay[daterange.Normalize(*row.CheckIn)] = row
	}

	records := make([]attendance.DayRecord, 0, len(days))
	for _, day := range days {
		record := attendance.DayRecord{
			EmployeeID:        input.EmployeeID,
			Day:               day,
			Status:            attendance.StatusAbsent,
			ProRatedDeduction: decimal.Zero,
		}

		if row, ok := rowsByDay[day]; ok {
			record.RecordID = &row.ID
			record.Status = row.Status
			record.CheckIn = row.CheckIn
			record.CheckOut = row.CheckOut
			record.Note = row.Note
			record.HoursWorked = row.TotalHours
			record.ProRatedDeduction = row.ProRatedDeduction
			record.AddedBy = row.AddedBy
			record.ModifiedBy = row.ModifiedBy
			modified := row.UpdatedAt
			record.ModifiedDate = &modified
		}

		if record.RecordID == nil {
			for _, lv := range input.Leaves {
				if lv.Covers(day) {
					note := "on approved leave"
					record.Note = &note
					break
				}
			}
		}

		daySched, err := input.Schedule.ResolveDay(day.Weekday())
		if err != nil {
			return nil, err
		}
		// Weekend first, holiday second; both force off over any row.
		if daySched.Closed {
			record.Status = attendance.StatusOff
		}
		if holidaySet[day] {
			record.Status = attendance.StatusOff
		}

		records = append(records, record)
	}

	return records, nil
}
