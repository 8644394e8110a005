package payroll

import (
	"time"

	"github.com/kantoria/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/leave"
	"github.com/kantoria/hr-backoffice-go/internal/domain/schedule"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/daterange"
	"github.com/shopspring/decimal"
)

// Deduction line titles.
const (
	titleAbsences    = "Unpaid absences"
	titleIncompletes = "Incomplete days"
	titleLates       = "Late arrivals"
)

var two = decimal.NewFromInt(2)

// cycleInput is the immutable snapshot one cycle computation works on.
// Attendance carries a lookback prefix before the cycle so the weekend
// compensation policy can see the preceding week.
type cycleInput struct {
	Days                  []time.Time
	TotalDays             int
	Schedule              schedule.WorkingHours
	Attendance            []attendance.Attendance
	Holidays              map[time.Time]bool
	Leaves                []leave.LeaveRequest
	Salary                decimal.Decimal
	AvailableLeaveCredits decimal.Decimal
	LookbackDays          int
}

type deductionLine struct {
	Title         string
	Amount        decimal.Decimal
	InstallmentID *string
}

// cycleTotals is the per-run accumulator; one instance per computation, never
// shared across concurrent cycle runs.
type cycleTotals struct {
	TotalWorkingDays     int
	TotalDaysWorked      int
	TotalAbsences        int
	TotalLates           int
	TotalIncompletes     decimal.Decimal
	LeaveCreditsUsed     decimal.Decimal
	OverusedLeaveCredits decimal.Decimal
	SalaryDeductionDays  decimal.Decimal
	Lines                []deductionLine
}

// computeCycle walks every calendar day of the cycle and aggregates the
// absence, lateness and incompleteness bookkeeping into deduction lines.
// Installment recovery happens outside; it needs the data store.
func computeCycle(input cycleInput) (cycleTotals, error) {
	totals := cycleTotals{
		TotalIncompletes:     decimal.Zero,
		LeaveCreditsUsed:     decimal.Zero,
		OverusedLeaveCredits: decimal.Zero,
		SalaryDeductionDays:  decimal.Zero,
	}

	byDay := make(map[time.Time]attendance.Attendance, len(input.Attendance))
	for _, row := range input.Attendance {
		if row.CheckIn == nil {
			continue
		}
		byDay[daterange.Normalize(*row.CheckIn)] = row
	}

	for _, day := range input.Days {
		daySched, err := input.Schedule.ResolveDay(day.Weekday())
		if err != nil {
			return cycleTotals{}, err
		}
		isWeekend := daySched.Closed
		isHoliday := input.Holidays[day]

		// Leave wins over weekend and holiday: the day always counts as an
		// absence-equivalent working day.
		if lv, onLeave := leaveCovering(input.Leaves, day); onLeave {
			totals.TotalWorkingDays++
			totals.countLeaveAbsence(lv.IsPaid, input.AvailableLeaveCredits)
			continue
		}

		if isWeekend || isHoliday {
			if input.LookbackDays > 0 && workedWithinLookback(byDay, day, input.LookbackDays) {
				// Worked as compensation earlier in the window; the day is
				// neither counted nor deducted.
				continue
			}
			totals.TotalAbsences++
			continue
		}

		row, hasRow := byDay[day]
		if hasRow && row.Status == attendance.StatusOff {
			continue
		}

		totals.TotalWorkingDays++
		if !hasRow || row.Status == attendance.StatusAbsent {
			totals.TotalAbsences++
		} else {
			totals.TotalDaysWorked++
		}
	}

	dailyRate := input.Salary.Div(decimal.NewFromInt(int64(input.TotalDays)))

	// Absences not covered by leave credits deduct from the current salary.
	totals.SalaryDeductionDays = decimal.NewFromInt(int64(totals.TotalAbsences)).Sub(totals.LeaveCreditsUsed)
	if totals.SalaryDeductionDays.IsPositive() {
		totals.Lines = append(totals.Lines, deductionLine{
			Title:  titleAbsences,
			Amount: dailyRate.Mul(totals.SalaryDeductionDays).Round(2),
		})
	}

	// Incomplete days contribute their summed pro-rated fractions, kept
	// distinct from any day count.
	for _, row := range input.Attendance {
		if row.CheckIn == nil || !withinCycle(*row.CheckIn, input.Days) {
			continue
		}
		if row.Status == attendance.StatusIncomplete {
			totals.TotalIncompletes = totals.TotalIncompletes.Add(row.ProRatedDeduction)
		}
		if row.Status == attendance.StatusLate {
			totals.TotalLates++
		}
	}
	if totals.TotalIncompletes.IsPositive() {
		totals.Lines = append(totals.Lines, deductionLine{
			Title:  titleIncompletes,
			Amount: dailyRate.Mul(totals.TotalIncompletes).Round(2),
		})
		totals.SalaryDeductionDays = totals.SalaryDeductionDays.Add(totals.TotalIncompletes)
	}

	// Every 3 lates cost half a day.
	if lateDays := totals.TotalLates / 3; lateDays > 0 {
		lateDeductionDays := decimal.NewFromInt(int64(lateDays)).Div(two)
		totals.Lines = append(totals.Lines, deductionLine{
			Title:  titleLates,
			Amount: dailyRate.Mul(decimal.NewFromInt(int64(lateDays))).Div(two).Round(2),
		})
		totals.SalaryDeductionDays = totals.SalaryDeductionDays.Add(lateDeductionDays)
	}

	return totals, nil
}

// countLeaveAbsence consumes one leave credit for a paid leave day while the
// balance allows, otherwise records the overuse. The day counts as an absence
// either way.
func (t *cycleTotals) countLeaveAbsence(isPaid bool, available decimal.Decimal) {
	if isPaid && available.GreaterThanOrEqual(t.LeaveCreditsUsed.Add(decimal.NewFromInt(1))) {
		t.LeaveCreditsUsed = t.LeaveCreditsUsed.Add(decimal.NewFromInt(1))
	} else if isPaid {
		t.OverusedLeaveCredits = t.OverusedLeaveCredits.Add(decimal.NewFromInt(1))
	}
	t.TotalAbsences++
}

func leaveCovering(leaves []leave.LeaveRequest, day time.Time) (leave.LeaveRequest, bool) {
	for _, lv := range leaves {
		if lv.Covers(day) {
			return lv, true
		}
	}
	return leave.LeaveRequest{}, false
}

// workedWithinLookback scans the preceding lookback window for a day the
// employee actually worked. Days before the loaded window cannot match.
func workedWithinLookback(byDay map[time.Time]attendance.Attendance, day time.Time, lookbackDays int) bool {
	for i := 1; i <= lookbackDays; i++ {
		prev := day.AddDate(0, 0, -i)
		row, ok := byDay[prev]
		if !ok {
			continue
		}
		if row.Status != attendance.StatusAbsent && row.Status != attendance.StatusOff {
			return true
		}
	}
	return false
}

func withinCycle(ts time.Time, days []time.Time) bool {
	d := daterange.Normalize(ts)
	return !d.Before(days[0]) && !d.After(days[len(days)-1])
}
