package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kantoria/hr-backoffice-go/internal/config"
	"github.com/kantoria/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/cashadvance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/employee"
	"github.com/kantoria/hr-backoffice-go/internal/domain/holiday"
	"github.com/kantoria/hr-backoffice-go/internal/domain/leave"
	"github.com/kantoria/hr-backoffice-go/internal/domain/payroll"
	"github.com/kantoria/hr-backoffice-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePayrollRepo struct {
	payroll.PayrollRepository

	payrolls   map[string]payroll.Payroll
	deductions map[string][]payroll.PayrollDeduction
	nextID     int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		payrolls:   make(map[string]payroll.Payroll),
		deductions: make(map[string][]payroll.PayrollDeduction),
	}
}

func (f *fakePayrollRepo) GetByEmployeeAndCycle(ctx context.Context, employeeID, cycleID string) (*payroll.Payroll, error) {
	for _, p := range f.payrolls {
		if p.EmployeeID == employeeID && p.PayrollCycleID == cycleID {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakePayrollRepo) CreatePayroll(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	f.nextID++
	p.ID = fmt.Sprintf("pay-%d", f.nextID)
	f.payrolls[p.ID] = p
	return p, nil
}

func (f *fakePayrollRepo) UpdatePayroll(ctx context.Context, p payroll.Payroll) error {
	f.payrolls[p.ID] = p
	return nil
}

func (f *fakePayrollRepo) CreateDeductions(ctx context.Context, deductions []payroll.PayrollDeduction) error {
	for _, d := range deductions {
		f.deductions[d.PayrollID] = append(f.deductions[d.PayrollID], d)
	}
	return nil
}

func (f *fakePayrollRepo) DeleteDeductionsByPayroll(ctx context.Context, payrollID string) error {
	delete(f.deductions, payrollID)
	return nil
}

func (f *fakePayrollRepo) ListDeductionsByPayroll(ctx context.Context, payrollID string) ([]payroll.PayrollDeduction, error) {
	return f.deductions[payrollID], nil
}

func (f *fakePayrollRepo) SumLeaveCreditsUsed(ctx context.Context, employeeID string, excludePayrollID *string) (decimal.Decimal, error) {
	total := decimal.Zero
	for id, p := range f.payrolls {
		if p.EmployeeID != employeeID {
			continue
		}
		if excludePayrollID != nil && id == *excludePayrollID {
			continue
		}
		total = total.Add(p.ToBeDeductedFromLeaveCredits)
	}
	return total, nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository

	rows []attendance.Attendance
}

func (f *fakeAttendanceRepo) FindByEmployeeAndDateRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	return f.rows, nil
}

type fakeHolidayRepo struct {
	holiday.HolidayRepository
}

func (f *fakeHolidayRepo) ListInRange(ctx context.Context, from, to time.Time) ([]holiday.PublicHoliday, error) {
	return nil, nil
}

type fakeLeaveRequestRepo struct {
	leave.LeaveRequestRepository
}

func (f *fakeLeaveRequestRepo) ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	return nil, nil
}

type fakeLeaveCreditRepo struct {
	leave.LeaveCreditRepository
}

func (f *fakeLeaveCreditRepo) TotalGranted(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type fakeInstallmentRepo struct {
	cashadvance.InstallmentRepository

	due        []cashadvance.CashAdvanceInstallment
	markedPaid []string
	reset      []string
}

func (f *fakeInstallmentRepo) ListUnpaidDueInMonth(ctx context.Context, employeeID, monthYear string) ([]cashadvance.CashAdvanceInstallment, error) {
	return f.due, nil
}

func (f *fakeInstallmentRepo) MarkPaid(ctx context.Context, id string, paidDate time.Time) error {
	f.markedPaid = append(f.markedPaid, id)
	return nil
}

func (f *fakeInstallmentRepo) MarkUnpaid(ctx context.Context, ids []string) error {
	f.reset = append(f.reset, ids...)
	return nil
}

type fakeSalaryRepo struct {
	employee.SalaryRepository
}

func (f *fakeSalaryRepo) GetActiveSalary(ctx context.Context, employeeID string, asOf time.Time) (employee.Salary, error) {
	return employee.Salary{ID: "sal-1", EmployeeID: employeeID, Amount: decimal.NewFromInt(3100)}, nil
}

type fakeWorkingHoursRepo struct {
	schedule.WorkingHoursRepository

	wh schedule.WorkingHours
}

func (f *fakeWorkingHoursRepo) GetForEmployee(ctx context.Context, employeeID string) (schedule.WorkingHours, error) {
	return f.wh, nil
}

func testConfig() config.PayrollConfig {
	return config.PayrollConfig{
		GraceHours:               0.25,
		LateGraceHours:           1,
		MaxCycleDays:             40,
		PolicyWindowDays:         60,
		BatchWorkers:             2,
		CompensationLookbackDays: 0,
	}
}

func januaryCycle(t *testing.T) payroll.PayrollCycle {
	t.Helper()
	return payroll.PayrollCycle{
		ID:       "cycle-1",
		FromDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		ToDate:   time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
	}
}

func newTestProcessor(t *testing.T, payrollRepo *fakePayrollRepo, attRepo *fakeAttendanceRepo, instRepo *fakeInstallmentRepo) *Processor {
	t.Helper()
	return NewProcessor(
		fakeTxManager{},
		payrollRepo,
		attRepo,
		&fakeHolidayRepo{},
		&fakeLeaveRequestRepo{},
		&fakeLeaveCreditRepo{},
		instRepo,
		&fakeSalaryRepo{},
		&fakeWorkingHoursRepo{wh: allOpenSchedule(t)},
		testConfig(),
	)
}

func TestProcess_SingleAbsenceProducesExpectedReceivable(t *testing.T) {
	t.Parallel()

	days := cycleDays(t, "2025-01-01", "2025-01-31")
	payrollRepo := newFakePayrollRepo()
	attRepo := &fakeAttendanceRepo{rows: completeRowsExcept(days, map[int]attendance.Status{14: ""})}

	p := newTestProcessor(t, payrollRepo, attRepo, &fakeInstallmentRepo{})
	result, err := p.Process(context.Background(), januaryCycle(t), "emp-1", nil)
	require.NoError(t, err)

	assert.Equal(t, 31, result.TotalDays)
	assert.Equal(t, 1, result.TotalAbsences)
	assert.True(t, decimal.NewFromInt(100).Equal(result.TotalDeduction), "got %s", result.TotalDeduction)
	assert.True(t, decimal.NewFromInt(3000).Equal(result.TotalReceivable), "got %s", result.TotalReceivable)

	deductions := payrollRepo.deductions[result.ID]
	require.Len(t, deductions, 1)
	assert.Equal(t, "Unpaid absences", deductions[0].Title)
}

func TestProcess_DuplicateWithoutRecalcTargetFails(t *testing.T) {
	t.Parallel()

	days := cycleDays(t, "2025-01-01", "2025-01-31")
	payrollRepo := newFakePayrollRepo()
	attRepo := &fakeAttendanceRepo{rows: completeRowsExcept(days, nil)}

	p := newTestProcessor(t, payrollRepo, attRepo, &fakeInstallmentRepo{})
	_, err := p.Process(context.Background(), januaryCycle(t), "emp-1", nil)
	require.NoError(t, err)

	_, err = p.Process(context.Background(), januaryCycle(t), "emp-1", nil)
	assert.ErrorIs(t, err, payroll.ErrDuplicatePayroll)
}

func TestProcess_RecalculationIsIdempotent(t *testing.T) {
	t.Parallel()

	days := cycleDays(t, "2025-01-01", "2025-01-31")
	payrollRepo := newFakePayrollRepo()
	attRepo := &fakeAttendanceRepo{rows: completeRowsExcept(days, map[int]attendance.Status{14: ""})}

	p := newTestProcessor(t, payrollRepo, attRepo, &fakeInstallmentRepo{})
	first, err := p.Process(context.Background(), januaryCycle(t), "emp-1", nil)
	require.NoError(t, err)

	second, err := p.Process(context.Background(), januaryCycle(t), "emp-1", &first.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.TotalReceivable.Equal(second.TotalReceivable))
	assert.True(t, first.TotalDeduction.Equal(second.TotalDeduction))
	// Deductions were replaced, not appended.
	assert.Len(t, payrollRepo.deductions[first.ID], 1)
}

func TestProcess_ManualCorrectionSurvivesRecalculation(t *testing.T) {
	t.Parallel()

	days := cycleDays(t, "2025-01-01", "2025-01-31")
	payrollRepo := newFakePayrollRepo()
	attRepo := &fakeAttendanceRepo{rows: completeRowsExcept(days, map[int]attendance.Status{14: ""})}

	p := newTestProcessor(t, payrollRepo, attRepo, &fakeInstallmentRepo{})
	first, err := p.Process(context.Background(), januaryCycle(t), "emp-1", nil)
	require.NoError(t, err)

	// An operator adjusts the payroll by +50 before the recalculation.
	adjusted := payrollRepo.payrolls[first.ID]
	adjusted.ManualCorrection = decimal.NewFromInt(50)
	adjusted.TotalReceivable = adjusted.TotalReceivable.Add(decimal.NewFromInt(50))
	payrollRepo.payrolls[first.ID] = adjusted

	second, err := p.Process(context.Background(), januaryCycle(t), "emp-1", &first.ID)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(50).Equal(second.ManualCorrection))
	// 3100 - 100 + 50
	assert.True(t, decimal.NewFromInt(3050).Equal(second.TotalReceivable), "got %s", second.TotalReceivable)
}

func TestProcess_InstallmentRecovery(t *testing.T) {
	t.Parallel()

	days := cycleDays(t, "2025-01-01", "2025-01-31")
	payrollRepo := newFakePayrollRepo()
	attRepo := &fakeAttendanceRepo{rows: completeRowsExcept(days, nil)}
	instRepo := &fakeInstallmentRepo{
		due: []cashadvance.CashAdvanceInstallment{{
			ID:                "inst-1",
			MonthYear:         "2025-01",
			InstallmentAmount: decimal.NewFromInt(125),
		}},
	}

	p := newTestProcessor(t, payrollRepo, attRepo, instRepo)
	result, err := p.Process(context.Background(), januaryCycle(t), "emp-1", nil)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(125).Equal(result.TotalDeduction), "got %s", result.TotalDeduction)
	assert.True(t, decimal.NewFromInt(2975).Equal(result.TotalReceivable), "got %s", result.TotalReceivable)
	assert.Equal(t, []string{"inst-1"}, instRepo.markedPaid)

	deductions := payrollRepo.deductions[result.ID]
	require.Len(t, deductions, 1)
	require.NotNil(t, deductions[0].InstallmentID)
	assert.Equal(t, "inst-1", *deductions[0].InstallmentID)

	// Recalculation first reverts the recovered installment.
	_, err = p.Process(context.Background(), januaryCycle(t), "emp-1", &result.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"inst-1"}, instRepo.reset)
}
