package payroll

import (
	"testing"
	"time"

	"github.com/kantoria/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/leave"
	"github.com/kantoria/hr-backoffice-go/internal/domain/schedule"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/daterange"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allOpenSchedule opens every weekday for 8 hours so weekend handling stays
// out of the way unless a test wants it.
func allOpenSchedule(t *testing.T) schedule.WorkingHours {
	t.Helper()

	entries := make([]schedule.OpeningHours, 0, 7)
	for d := 0; d < 7; d++ {
		entries = append(entries, schedule.OpeningHours{Day: d, Open: "09:00", Close: "17:00", TotalHours: 8})
	}
	week, err := schedule.NewWeekDays(entries)
	require.NoError(t, err)
	return schedule.WorkingHours{ID: "wh-1", Days: week}
}

func monFriSchedule(t *testing.T) schedule.WorkingHours {
	t.Helper()

	entries := make([]schedule.OpeningHours, 0, 7)
	for d := 0; d < 7; d++ {
		entry := schedule.OpeningHours{Day: d}
		if d == 0 || d == 6 {
			entry.Closed = true
		} else {
			entry.Open = "09:00"
			entry.Close = "17:00"
			entry.TotalHours = 8
		}
		entries = append(entries, entry)
	}
	week, err := schedule.NewWeekDays(entries)
	require.NoError(t, err)
	return schedule.WorkingHours{ID: "wh-1", Days: week}
}

func cycleDays(t *testing.T, from, to string) []time.Time {
	t.Helper()

	fromT, err := time.Parse("2006-01-02", from)
	require.NoError(t, err)
	toT, err := time.Parse("2006-01-02", to)
	require.NoError(t, err)
	days, err := daterange.Days(fromT, toT, 0)
	require.NoError(t, err)
	return days
}

// rowOn builds a classified attendance row for the given day.
func rowOn(day time.Time, status attendance.Status, deduction decimal.Decimal) attendance.Attendance {
	checkIn := day.Add(9 * time.Hour)
	checkOut := day.Add(17 * time.Hour)
	return attendance.Attendance{
		EmployeeID:        "emp-1",
		CheckIn:           &checkIn,
		CheckOut:          &checkOut,
		TotalHours:        8,
		Status:            status,
		ProRatedDeduction: deduction,
	}
}

func completeRowsExcept(days []time.Time, skip map[int]attendance.Status) []attendance.Attendance {
	rows := make([]attendance.Attendance, 0, len(days))
	for i, day := range days {
		status, override := skip[i]
		if override && status == "" {
			continue
		}
		if !override {
			status = attendance.StatusComplete
		}
		rows = append(rows, rowOn(day, status, decimal.Zero))
	}
	return rows
}

func TestComputeCycle_SingleAbsenceDeductsOneDailyRate(t *testing.T) {
	t.Parallel()

	days := cycleDays(t, "2025-01-01", "2025-01-31")
	// Day index 14 has no row at all.
	rows := completeRowsExcept(days, map[int]attendance.Status{14: ""})

	totals, err := computeCycle(cycleInput{
		Days:       days,
		TotalDays:  31,
		Schedule:   allOpenSchedule(t),
		Attendance: rows,
		Salary:     decimal.NewFromInt(3100),
	})
	require.NoError(t, err)

	assert.Equal(t, 31, totals.TotalWorkingDays)
	assert.Equal(t, 30, totals.TotalDaysWorked)
	assert.Equal(t, 1, totals.TotalAbsences)
	require.Len(t, totals.Lines, 1)
	assert.Equal(t, "Unpaid absences", totals.Lines[0].Title)
	assert.True(t, decimal.NewFromInt(100).Equal(totals.Lines[0].Amount), "got %s", totals.Lines[0].Amount)
	assert.True(t, decimal.NewFromInt(1).Equal(totals.SalaryDeductionDays))
}

func TestComputeCycle_ThreeLatesCostHalfADay(t *testing.T) {
	t.Parallel()

	days := cycleDays(t, "2025-01-01", "2025-01-31")
	rows := completeRowsExcept(days, map[int]attendance.Status{
		3:  attendance.StatusLate,
		10: attendance.StatusLate,
		17: attendance.StatusLate,
	})

	totals, err := computeCycle(cycleInput{
		Days:       days,
		TotalDays:  31,
		Schedule:   allOpenSchedule(t),
		Attendance: rows,
		Salary:     decimal.NewFromInt(3100),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, totals.TotalLates)
	assert.Equal(t, 0, totals.TotalAbsences)
	require.Len(t, totals.Lines, 1)
	assert.Equal(t, "Late arrivals", totals.Lines[0].Title)
	// 3100/31 * (1/2) = 50
	assert.True(t, decimal.NewFromInt(50).Equal(totals.Lines[0].Amount), "got %s", totals.Lines[0].Amount)
	assert.True(t, decimal.NewFromFloat(0.5).Equal(totals.SalaryDeductionDays))
}

func TestComputeCycle_TwoLatesCostNothing(t *testing.T) {
	t.Parallel()

	days := cycleDays(t, "2025-01-01", "2025-01-31")
	rows := completeRowsExcept(days, map[int]attendance.Status{
		3:  attendance.StatusLate,
		10: attendance.StatusLate,
	})

	totals, err := computeCycle(cycleInput{
		Days:       days,
		TotalDays:  31,
		Schedule:   allOpenSchedule(t),
		Attendance: rows,
		Salary:     decimal.NewFromInt(3100),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, totals.TotalLates)
	assert.Empty(t, totals.Lines)
}

func TestComputeCycle_IncompleteFractionsAccumulate(t *testing.T) {
	t.Parallel()

	days := cycleDays(t, "2025-01-01", "2025-01-31")
	rows := completeRowsExcept(days, map[int]attendance.Status{5: "", 6: ""})
	rows = append(rows,
		rowOn(days[5], attendance.StatusIncomplete, decimal.NewFromFloat(0.25)),
		rowOn(days[6], attendance.StatusIncomplete, decimal.NewFromFloat(0.5)),
	)

	totals, err := computeCycle(cycleInput{
		Days:       days,
		TotalDays:  31,
		Schedule:   allOpenSchedule(t),
		Attendance: rows,
		Salary:     decimal.NewFromInt(3100),
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromFloat(0.75).Equal(totals.TotalIncompletes), "got %s", totals.TotalIncompletes)
	require.Len(t, totals.Lines, 1)
	assert.Equal(t, "Incomplete days", totals.Lines[0].Title)
	// 3100/31 * 0.75 = 75
	assert.True(t, decimal.NewFromInt(75).Equal(totals.Lines[0].Amount), "got %s", totals.Lines[0].Amount)
}

func TestComputeCycle_PaidLeaveConsumesCreditsBeforeSalary(t *testing.T) {
	t.Parallel()

	days := cycleDays(t, "2025-01-01", "2025-01-31")
	// Two leave days with only one credit available.
	rows := completeRowsExcept(days, map[int]attendance.Status{8: "", 9: ""})

	totals, err := computeCycle(cycleInput{
		Days:       days,
		TotalDays:  31,
		Schedule:   allOpenSchedule(t),
		Attendance: rows,
		Leaves: []leave.LeaveRequest{{
			EmployeeID: "emp-1",
			LeaveFrom:  days[8],
			LeaveTo:    days[9],
			Status:     leave.StatusApproved,
			IsPaid:     true,
		}},
		Salary:                decimal.NewFromInt(3100),
		AvailableLeaveCredits: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, totals.TotalAbsences)
	assert.True(t, decimal.NewFromInt(1).Equal(totals.LeaveCreditsUsed))
	assert.True(t, decimal.NewFromInt(1).Equal(totals.OverusedLeaveCredits))
	// One absence remains on the salary after the credit.
	require.Len(t, totals.Lines, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(totals.Lines[0].Amount), "got %s", totals.Lines[0].Amount)
}

func TestComputeCycle_WeekendExcusedByLookbackWork(t *testing.T) {
	t.Parallel()

	// Monday Jan 6 through Sunday Jan 12; work recorded Monday to Friday.
	days := cycleDays(t, "2025-01-06", "2025-01-12")
	rows := make([]attendance.Attendance, 0, 5)
	for i := 0; i < 5; i++ {
		rows = append(rows, rowOn(days[i], attendance.StatusComplete, decimal.Zero))
	}

	totals, err := computeCycle(cycleInput{
		Days:         days,
		TotalDays:    7,
		Schedule:     monFriSchedule(t),
		Attendance:   rows,
		Salary:       decimal.NewFromInt(700),
		LookbackDays: 6,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, totals.TotalWorkingDays)
	assert.Equal(t, 5, totals.TotalDaysWorked)
	assert.Equal(t, 0, totals.TotalAbsences)
	assert.Empty(t, totals.Lines)
}

func TestComputeCycle_WeekendCountsAbsentWithoutLookbackPolicy(t *testing.T) {
	t.Parallel()

	days := cycleDays(t, "2025-01-06", "2025-01-12")
	rows := make([]attendance.Attendance, 0, 5)
	for i := 0; i < 5; i++ {
		rows = append(rows, rowOn(days[i], attendance.StatusComplete, decimal.Zero))
	}

	totals, err := computeCycle(cycleInput{
		Days:       days,
		TotalDays:  7,
		Schedule:   monFriSchedule(t),
		Attendance: rows,
		Salary:     decimal.NewFromInt(700),
	})
	require.NoError(t, err)

	// Saturday and Sunday become uncompensated absences.
	assert.Equal(t, 2, totals.TotalAbsences)
	assert.Equal(t, 5, totals.TotalWorkingDays)
}
