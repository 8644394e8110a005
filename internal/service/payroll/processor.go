package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kantoria/hr-backoffice-go/internal/config"
	"github.com/kantoria/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/cashadvance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/employee"
	"github.com/kantoria/hr-backoffice-go/internal/domain/holiday"
	"github.com/kantoria/hr-backoffice-go/internal/domain/leave"
	"github.com/kantoria/hr-backoffice-go/internal/domain/payroll"
	"github.com/kantoria/hr-backoffice-go/internal/domain/schedule"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/database"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/daterange"
	"github.com/shopspring/decimal"
)

// Processor computes one employee's payroll for one cycle: the day-by-day
// walk, currency deductions, leave-credit consumption and cash-advance
// installment recovery.
type Processor struct {
	txm              database.TxManager
	payrollRepo      payroll.PayrollRepository
	attendanceRepo   attendance.AttendanceRepository
	holidayRepo      holiday.HolidayRepository
	leaveRepo        leave.LeaveRequestRepository
	leaveCreditRepo  leave.LeaveCreditRepository
	installmentRepo  cashadvance.InstallmentRepository
	salaryRepo       employee.SalaryRepository
	workingHoursRepo schedule.WorkingHoursRepository
	cfg              config.PayrollConfig
}

func NewProcessor(
	txm database.TxManager,
	payrollRepo payroll.PayrollRepository,
	attendanceRepo attendance.AttendanceRepository,
	holidayRepo holiday.HolidayRepository,
	leaveRepo leave.LeaveRequestRepository,
	leaveCreditRepo leave.LeaveCreditRepository,
	installmentRepo cashadvance.InstallmentRepository,
	salaryRepo employee.SalaryRepository,
	workingHoursRepo schedule.WorkingHoursRepository,
	cfg config.PayrollConfig,
) *Processor {
	return &Processor{
		txm:              txm,
		payrollRepo:      payrollRepo,
		attendanceRepo:   attendanceRepo,
		holidayRepo:      holidayRepo,
		leaveRepo:        leaveRepo,
		leaveCreditRepo:  leaveCreditRepo,
		installmentRepo:  installmentRepo,
		salaryRepo:       salaryRepo,
		workingHoursRepo: workingHoursRepo,
		cfg:              cfg,
	}
}

// Process computes and persists the payroll for one employee and cycle.
// A nil existingPayrollID creates; a non-nil one recalculates that payroll in
// place, reusing its manual correction and resetting installments it had
// recovered. Callers must not target the same payroll concurrently.
func (p *Processor) Process(ctx context.Context, cycle payroll.PayrollCycle, employeeID string, existingPayrollID *string) (payroll.Payroll, error) {
	existing, err := p.payrollRepo.GetByEmployeeAndCycle(ctx, employeeID, cycle.ID)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("check existing payroll: %w", err)
	}
	manualCorrection := decimal.Zero
	if existing != nil {
		if existingPayrollID == nil || existing.ID != *existingPayrollID {
			return payroll.Payroll{}, payroll.ErrDuplicatePayroll
		}
		manualCorrection = existing.ManualCorrection
	}

	salary, err := p.salaryRepo.GetActiveSalary(ctx, employeeID, cycle.ToDate)
	if err != nil {
		return payroll.Payroll{}, err
	}
	wh, err := p.workingHoursRepo.GetForEmployee(ctx, employeeID)
	if err != nil {
		return payroll.Payroll{}, err
	}

	// Recalculation starts from a clean slate: installments the previous run
	// recovered become unpaid again before the cycle month is re-scanned.
	if existing != nil {
		if err := p.resetRecoveredInstallments(ctx, existing.ID); err != nil {
			return payroll.Payroll{}, err
		}
	}

	days, err := daterange.Days(cycle.FromDate, cycle.ToDate, p.cfg.MaxCycleDays)
	if err != nil {
		if errors.Is(err, daterange.ErrRangeTooLong) {
			return payroll.Payroll{}, payroll.ErrCycleTooLong
		}
		return payroll.Payroll{}, fmt.Errorf("resolve cycle days: %w", err)
	}

	input, err := p.loadCycleInput(ctx, cycle, employeeID, existingPayrollID, days, salary.Amount, wh)
	if err != nil {
		return payroll.Payroll{}, err
	}

	totals, err := computeCycle(input)
	if err != nil {
		return payroll.Payroll{}, err
	}

	// Installments due in the cycle month are recovered as itemized lines.
	monthYear := cycle.FromDate.Format("2006-01")
	installments, err := p.installmentRepo.ListUnpaidDueInMonth(ctx, employeeID, monthYear)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("load due installments: %w", err)
	}
	lines := totals.Lines
	for _, inst := range installments {
		lines = append(lines, deductionLine{
			Title:         fmt.Sprintf("Cash advance installment %s", inst.MonthYear),
			Amount:        inst.InstallmentAmount,
			InstallmentID: &inst.ID,
		})
	}

	totalDeduction := decimal.Zero
	for _, line := range lines {
		totalDeduction = totalDeduction.Add(line.Amount)
	}
	totalReceivable := salary.Amount.Sub(totalDeduction).Add(manualCorrection)

	result := payroll.Payroll{
		EmployeeID:                    employeeID,
		PayrollCycleID:                cycle.ID,
		SalaryID:                      salary.ID,
		SalaryAmount:                  salary.Amount,
		TotalDays:                     input.TotalDays,
		TotalWorkingDays:              totals.TotalWorkingDays,
		TotalDaysWorked:               totals.TotalDaysWorked,
		TotalAbsences:                 totals.TotalAbsences,
		TotalIncompletes:              totals.TotalIncompletes,
		TotalLates:                    totals.TotalLates,
		ToBeDeductedFromLeaveCredits:  totals.LeaveCreditsUsed,
		ToBeDeductedFromCurrentSalary: totals.SalaryDeductionDays,
		ManualCorrection:              manualCorrection,
		TotalDeduction:                totalDeduction,
		TotalReceivable:               totalReceivable,
	}
	if existing != nil {
		result.ID = existing.ID
		result.Paid = existing.Paid
	}

	err = p.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		if existing != nil {
			if err := p.payrollRepo.UpdatePayroll(ctx, result); err != nil {
				return fmt.Errorf("update payroll: %w", err)
			}
			if err := p.payrollRepo.DeleteDeductionsByPayroll(ctx, result.ID); err != nil {
				return fmt.Errorf("delete stale deductions: %w", err)
			}
		} else {
			created, err := p.payrollRepo.CreatePayroll(ctx, result)
			if err != nil {
				return fmt.Errorf("create payroll: %w", err)
			}
			result = created
		}

		deductions := make([]payroll.PayrollDeduction, 0, len(lines))
		for _, line := range lines {
			deductions = append(deductions, payroll.PayrollDeduction{
				PayrollID:     result.ID,
				Title:         line.Title,
				Amount:        line.Amount,
				InstallmentID: line.InstallmentID,
			})
		}
		if len(deductions) > 0 {
			if err := p.payrollRepo.CreateDeductions(ctx, deductions); err != nil {
				return fmt.Errorf("create deductions: %w", err)
			}
		}

		now := time.Now().UTC()
		for _, inst := range installments {
			if err := p.installmentRepo.MarkPaid(ctx, inst.ID, now); err != nil {
				return fmt.Errorf("mark installment paid: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return payroll.Payroll{}, err
	}

	return result, nil
}

func (p *Processor) loadCycleInput(
	ctx context.Context,
	cycle payroll.PayrollCycle,
	employeeID string,
	excludePayrollID *string,
	days []time.Time,
	salaryAmount decimal.Decimal,
	wh schedule.WorkingHours,
) (cycleInput, error) {
	from, to := days[0], days[len(days)-1]

	// The attendance window extends back by the compensation lookback so
	// weekend days can see the preceding week.
	loadFrom := from.AddDate(0, 0, -p.cfg.CompensationLookbackDays)
	rows, err := p.attendanceRepo.FindByEmployeeAndDateRange(ctx, employeeID, loadFrom, to.AddDate(0, 0, 1))
	if err != nil {
		return cycleInput{}, fmt.Errorf("load attendance rows: %w", err)
	}

	holidays, err := p.holidayRepo.ListInRange(ctx, from, to)
	if err != nil {
		return cycleInput{}, fmt.Errorf("load holidays: %w", err)
	}
	holidaySet := make(map[time.Time]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[daterange.Normalize(h.Date)] = true
	}

	leaves, err := p.leaveRepo.ListApprovedInRange(ctx, employeeID, from, to)
	if err != nil {
		return cycleInput{}, fmt.Errorf("load leave requests: %w", err)
	}

	granted, err := p.leaveCreditRepo.TotalGranted(ctx, employeeID)
	if err != nil {
		return cycleInput{}, fmt.Errorf("load leave credit grants: %w", err)
	}
	used, err := p.payrollRepo.SumLeaveCreditsUsed(ctx, employeeID, excludePayrollID)
	if err != nil {
		return cycleInput{}, fmt.Errorf("load leave credit usage: %w", err)
	}

	return cycleInput{
		Days:                  days,
		TotalDays:             len(days),
		Schedule:              wh,
		Attendance:            rows,
		Holidays:              holidaySet,
		Leaves:                leaves,
		Salary:                salaryAmount,
		AvailableLeaveCredits: granted.Sub(used),
		LookbackDays:          p.cfg.CompensationLookbackDays,
	}, nil
}

// resetRecoveredInstallments reverts installments the payroll's previous run
// marked paid, identified through its deduction line links.
func (p *Processor) resetRecoveredInstallments(ctx context.Context, payrollID string) error {
	deductions, err := p.payrollRepo.ListDeductionsByPayroll(ctx, payrollID)
	if err != nil {
		return fmt.Errorf("load prior deductions: %w", err)
	}
	var installmentIDs []string
	for _, d := range deductions {
		if d.InstallmentID != nil {
			installmentIDs = append(installmentIDs, *d.InstallmentID)
		}
	}
	if len(installmentIDs) == 0 {
		return nil
	}
	if err := p.installmentRepo.MarkUnpaid(ctx, installmentIDs); err != nil {
		return fmt.Errorf("reset recovered installments: %w", err)
	}
	return nil
}
