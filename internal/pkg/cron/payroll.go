package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kantoria/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/payroll"
)

// BackOfficeJobs bundles the engine's scheduled work: reconciling yesterday's
// biometric events and sweeping payroll cycles whose range has ended.
type BackOfficeJobs struct {
	attendanceService attendance.AttendanceService
	payrollService    payroll.PayrollService
	payrollRepo       payroll.PayrollRepository
}

func NewBackOfficeJobs(
	attendanceService attendance.AttendanceService,
	payrollService payroll.PayrollService,
	payrollRepo payroll.PayrollRepository,
) *BackOfficeJobs {
	return &BackOfficeJobs{
		attendanceService: attendanceService,
		payrollService:    payrollService,
		payrollRepo:       payrollRepo,
	}
}

func (j *BackOfficeJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("nightly_biometric_reconciliation", 1*time.Hour, j.ReconcileYesterday)
	scheduler.AddJob("pending_cycle_sweep", 1*time.Hour, j.SweepEndedCycles)
}

// ReconcileYesterday converts yesterday's raw biometric events into attendance
// records across the active workforce. It only fires in the midnight hour.
func (j *BackOfficeJobs) ReconcileYesterday(ctx context.Context) error {
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	queued, err := j.attendanceService.ReconcileAll(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("start nightly reconciliation: %w", err)
	}

	slog.Info("cron: nightly reconciliation started",
		"day", yesterday.Format("2006-01-02"), "employees_queued", queued)
	return nil
}

// SweepEndedCycles processes cycles whose range has passed but that were never
// run manually.
func (j *BackOfficeJobs) SweepEndedCycles(ctx context.Context) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	cycles, err := j.payrollRepo.ListUnprocessedCycles(ctx, today)
	if err != nil {
		return fmt.Errorf("list unprocessed cycles: %w", err)
	}

	for _, cycle := range cycles {
		err := j.payrollService.ProcessCycle(ctx, cycle.ID)
		if err != nil {
			if errors.Is(err, payroll.ErrCycleAlreadyProcessing) {
				continue
			}
			slog.Error("cron: failed to start cycle processing",
				"cycle_id", cycle.ID, "error", err)
			continue
		}
		slog.Info("cron: cycle processing started", "cycle_id", cycle.ID)
	}
	return nil
}
