package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kantoria/hr-backoffice-go/internal/config"
	"github.com/kantoria/hr-backoffice-go/internal/domain/employee"
	"github.com/kantoria/hr-backoffice-go/internal/domain/payroll"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/daterange"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/validator"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/workerpool"
)

type PayrollServiceImpl struct {
	processor    *Processor
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	cfg          config.PayrollConfig
}

func NewPayrollService(
	processor *Processor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	cfg config.PayrollConfig,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		processor:    processor,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		cfg:          cfg,
	}
}

func (s *PayrollServiceImpl) CreateCycle(ctx context.Context, req payroll.CreateCycleRequest) (payroll.CycleResponse, error) {
	from, to, err := req.Validate()
	if err != nil {
		return payroll.CycleResponse{}, err
	}
	if daterange.DayCount(from, to) > s.cfg.PolicyWindowDays {
		return payroll.CycleResponse{}, validator.ValidationErrors{{
			Field:   "to_date",
			Message: fmt.Sprintf("cycle may span at most %d days", s.cfg.PolicyWindowDays),
		}}
	}

	cycle, err := s.payrollRepo.CreateCycle(ctx, payroll.PayrollCycle{
		FromDate: daterange.Normalize(from),
		ToDate:   daterange.Normalize(to),
	})
	if err != nil {
		return payroll.CycleResponse{}, fmt.Errorf("create payroll cycle: %w", err)
	}
	return payroll.ToCycleResponse(cycle), nil
}

func (s *PayrollServiceImpl) GetCycle(ctx context.Context, id string) (payroll.CycleResponse, error) {
	cycle, err := s.payrollRepo.GetCycleByID(ctx, id)
	if err != nil {
		return payroll.CycleResponse{}, err
	}
	return payroll.ToCycleResponse(cycle), nil
}

func (s *PayrollServiceImpl) ListCycles(ctx context.Context) ([]payroll.CycleResponse, error) {
	cycles, err := s.payrollRepo.ListCycles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payroll cycles: %w", err)
	}
	resp := make([]payroll.CycleResponse, 0, len(cycles))
	for _, c := range cycles {
		resp = append(resp, payroll.ToCycleResponse(c))
	}
	return resp, nil
}

// ProcessCycle marks the cycle processing and fans the per-employee
// computation out in the background. The request context is not reused for
// the background run so an HTTP disconnect cannot abort the batch.
func (s *PayrollServiceImpl) ProcessCycle(ctx context.Context, cycleID string) error {
	cycle, err := s.payrollRepo.GetCycleByID(ctx, cycleID)
	if err != nil {
		return err
	}
	if cycle.Processing {
		return payroll.ErrCycleAlreadyProcessing
	}
	if daterange.DayCount(cycle.FromDate, cycle.ToDate) > s.cfg.MaxCycleDays {
		return payroll.ErrCycleTooLong
	}

	cycle.Processing = true
	if err := s.payrollRepo.UpdateCycle(ctx, cycle); err != nil {
		return fmt.Errorf("mark cycle processing: %w", err)
	}

	go s.runCycle(context.Background(), cycle)
	return nil
}

func (s *PayrollServiceImpl) runCycle(ctx context.Context, cycle payroll.PayrollCycle) {
	started := time.Now()

	ids, err := s.employeeRepo.ListActiveIDs(ctx)
	if err != nil {
		slog.Error("payroll cycle aborted, could not list employees",
			"cycle_id", cycle.ID, "error", err)
		cycle.Processing = false
		if uerr := s.payrollRepo.UpdateCycle(ctx, cycle); uerr != nil {
			slog.Error("failed to unmark processing cycle", "cycle_id", cycle.ID, "error", uerr)
		}
		return
	}

	report := workerpool.Run(ctx, ids, s.cfg.BatchWorkers, func(ctx context.Context, employeeID string) error {
		existing, err := s.payrollRepo.GetByEmployeeAndCycle(ctx, employeeID, cycle.ID)
		if err != nil {
			return fmt.Errorf("check existing payroll: %w", err)
		}
		var existingID *string
		if existing != nil {
			existingID = &existing.ID
		}
		_, err = s.processor.Process(ctx, cycle, employeeID, existingID)
		return err
	})

	cycle.Processing = false
	cycle.Processed = true
	cycle.Success = report.Succeeded
	cycle.Failed = report.Failed
	cycle.FailedReport = payroll.FailedReport{}
	for _, f := range report.Failures {
		cycle.FailedReport = append(cycle.FailedReport, payroll.FailedItem{
			EmployeeID: f.ID,
			Message:    f.Message,
		})
	}
	if err := s.payrollRepo.UpdateCycle(ctx, cycle); err != nil {
		slog.Error("failed to finalize payroll cycle", "cycle_id", cycle.ID, "error", err)
		return
	}

	slog.Info("payroll cycle processed",
		"cycle_id", cycle.ID,
		"employees", report.Processed,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"duration", time.Since(started).String(),
	)
}

func (s *PayrollServiceImpl) RecalculatePayroll(ctx context.Context, payrollID string) (payroll.PayrollResponse, error) {
	existing, err := s.payrollRepo.GetPayrollByID(ctx, payrollID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if existing.Paid {
		return payroll.PayrollResponse{}, payroll.ErrPayrollAlreadyPaid
	}
	cycle, err := s.payrollRepo.GetCycleByID(ctx, existing.PayrollCycleID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if cycle.Processing {
		return payroll.PayrollResponse{}, payroll.ErrCycleAlreadyProcessing
	}

	result, err := s.processor.Process(ctx, cycle, existing.EmployeeID, &existing.ID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	deductions, err := s.payrollRepo.ListDeductionsByPayroll(ctx, result.ID)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("list deductions: %w", err)
	}
	return payroll.ToPayrollResponse(result, deductions), nil
}

// ApplyManualCorrection replaces the payroll's correction and shifts the
// receivable by the difference. No recomputation happens; the correction
// simply survives future recalculations.
func (s *PayrollServiceImpl) ApplyManualCorrection(ctx context.Context, req payroll.ManualCorrectionRequest) (payroll.PayrollResponse, error) {
	p, err := s.payrollRepo.GetPayrollByID(ctx, req.PayrollID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if p.Paid {
		return payroll.PayrollResponse{}, payroll.ErrPayrollAlreadyPaid
	}

	delta := req.Correction.Sub(p.ManualCorrection)
	p.ManualCorrection = req.Correction
	p.TotalReceivable = p.TotalReceivable.Add(delta)
	if err := s.payrollRepo.UpdatePayroll(ctx, p); err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("apply manual correction: %w", err)
	}

	deductions, err := s.payrollRepo.ListDeductionsByPayroll(ctx, p.ID)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("list deductions: %w", err)
	}
	return payroll.ToPayrollResponse(p, deductions), nil
}

func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	p, err := s.payrollRepo.GetPayrollByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	deductions, err := s.payrollRepo.ListDeductionsByPayroll(ctx, p.ID)
	if err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("list deductions: %w", err)
	}
	return payroll.ToPayrollResponse(p, deductions), nil
}

func (s *PayrollServiceImpl) ListPayrollsByCycle(ctx context.Context, cycleID string) ([]payroll.PayrollResponse, error) {
	if _, err := s.payrollRepo.GetCycleByID(ctx, cycleID); err != nil {
		return nil, err
	}
	payrolls, err := s.payrollRepo.ListByCycle(ctx, cycleID)
	if err != nil {
		return nil, fmt.Errorf("list payrolls: %w", err)
	}
	resp := make([]payroll.PayrollResponse, 0, len(payrolls))
	for _, p := range payrolls {
		resp = append(resp, payroll.ToPayrollResponse(p, nil))
	}
	return resp, nil
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) error {
	p, err := s.payrollRepo.GetPayrollByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Paid {
		return payroll.ErrPayrollAlreadyPaid
	}
	return s.payrollRepo.MarkPaid(ctx, id)
}
