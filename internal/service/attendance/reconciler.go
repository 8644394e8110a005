package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/kantoria/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/schedule"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/database"
)

// Reconciler converts raw biometric clock events for one employee day into
// the canonical attendance record.
type Reconciler struct {
	txm              database.TxManager
	attendanceRepo   attendance.AttendanceRepository
	biometricRepo    attendance.BiometricEventRepository
	workingHoursRepo schedule.WorkingHoursRepository
	classifier       Classifier
}

func NewReconciler(
	txm database.TxManager,
	attendanceRepo attendance.AttendanceRepository,
	biometricRepo attendance.BiometricEventRepository,
	workingHoursRepo schedule.WorkingHoursRepository,
	classifier Classifier,
) *Reconciler {
	return &Reconciler{
		txm:              txm,
		attendanceRepo:   attendanceRepo,
		biometricRepo:    biometricRepo,
		workingHoursRepo: workingHoursRepo,
		classifier:       classifier,
	}
}

// ReconcileDay resolves the earliest and latest unprocessed events inside
// [dayStart, dayEnd], replaces any conflicting attendance record, and marks
// the consumed events processed. Identical existing timestamps surface
// ErrAlreadyProcessed with no writes; callers treat that as a skip.
func (r *Reconciler) ReconcileDay(ctx context.Context, employeeID string, dayStart, dayEnd time.Time) (attendance.Attendance, error) {
	first, err := r.biometricRepo.FirstUnprocessed(ctx, employeeID, dayStart, dayEnd)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("find first biometric event: %w", err)
	}
	if first == nil {
		return attendance.Attendance{}, attendance.ErrNoCheckInFound
	}
	last, err := r.biometricRepo.LastUnprocessed(ctx, employeeID, dayStart, dayEnd)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("find last biometric event: %w", err)
	}
	if last == nil {
		return attendance.Attendance{}, attendance.ErrNoCheckOutFound
	}

	existing, err := r.attendanceRepo.FindByEmployeeAndDay(ctx, employeeID, dayStart)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("find existing attendance: %w", err)
	}
	if existing != nil && existing.CheckIn != nil && existing.CheckOut != nil &&
		existing.CheckIn.Equal(first.RecordedAt) && existing.CheckOut.Equal(last.RecordedAt) {
		return attendance.Attendance{}, attendance.ErrAlreadyProcessed
	}

	wh, err := r.workingHoursRepo.GetForEmployee(ctx, employeeID)
	if err != nil {
		return attendance.Attendance{}, err
	}
	daySched, err := wh.ResolveDay(dayStart.Weekday())
	if err != nil {
		return attendance.Attendance{}, err
	}

	workedHours := last.RecordedAt.Sub(first.RecordedAt).Hours()
	status, deduction, err := r.classifier.Classify(daySched, workedHours)
	if err != nil {
		return attendance.Attendance{}, err
	}

	checkIn := first.RecordedAt
	checkOut := last.RecordedAt
	record := attendance.Attendance{
		EmployeeID:        employeeID,
		CheckIn:           &checkIn,
		CheckOut:          &checkOut,
		TotalHours:        workedHours,
		Status:            status,
		ProRatedDeduction: deduction,
		Type:              attendance.TypeAuto,
	}

	// Replace the stale record, write the new one and consume the events in
	// one transaction; event marking stays last so a failed write leaves the
	// source data untouched.
	err = r.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		if existing != nil {
			if err := r.attendanceRepo.Delete(ctx, existing.ID); err != nil {
				return fmt.Errorf("delete stale attendance: %w", err)
			}
		}
		created, err := r.attendanceRepo.Create(ctx, record)
		if err != nil {
			return fmt.Errorf("create attendance: %w", err)
		}
		record = created
		if err := r.biometricRepo.MarkProcessedInRange(ctx, employeeID, dayStart, dayEnd); err != nil {
			return fmt.Errorf("mark biometric events processed: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	return record, nil
}
