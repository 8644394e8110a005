package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/kantoria/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository

	existing *attendance.Attendance
	created  []attendance.Attendance
	deleted  []string
}

func (f *fakeAttendanceRepo) FindByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*attendance.Attendance, error) {
	return f.existing, nil
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	att.ID = "att-new"
	f.created = append(f.created, att)
	return att, nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeBiometricRepo struct {
	attendance.BiometricEventRepository

	first  *attendance.BiometricEvent
	last   *attendance.BiometricEvent
	marked int
}

func (f *fakeBiometricRepo) FirstUnprocessed(ctx context.Context, employeeID string, from, to time.Time) (*attendance.BiometricEvent, error) {
	return f.first, nil
}

func (f *fakeBiometricRepo) LastUnprocessed(ctx context.Context, employeeID string, from, to time.Time) (*attendance.BiometricEvent, error) {
	return f.last, nil
}

func (f *fakeBiometricRepo) MarkProcessedInRange(ctx context.Context, employeeID string, from, to time.Time) error {
	f.marked++
	return nil
}

type fakeWorkingHoursRepo struct {
	schedule.WorkingHoursRepository

	wh schedule.WorkingHours
}

func (f *fakeWorkingHoursRepo) GetForEmployee(ctx context.Context, employeeID string) (schedule.WorkingHours, error) {
	return f.wh, nil
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1).Add(-time.Second)
}

func TestReconcileDay_CreatesAutoRecordAndConsumesEvents(t *testing.T) {
	t.Parallel()

	// Tuesday March 4, 09:00 in and 17:00 out.
	in := ts(t, "2025-03-04 09:00:00")
	out := ts(t, "2025-03-04 17:00:00")
	attRepo := &fakeAttendanceRepo{}
	bioRepo := &fakeBiometricRepo{
		first: &attendance.BiometricEvent{ID: "ev-1", EmployeeID: "emp-1", RecordedAt: in},
		last:  &attendance.BiometricEvent{ID: "ev-2", EmployeeID: "emp-1", RecordedAt: out},
	}
	r := NewReconciler(fakeTxManager{}, attRepo, bioRepo, &fakeWorkingHoursRepo{wh: weekdaySchedule(t)}, testClassifier())

	start, end := dayBounds(in)
	record, err := r.ReconcileDay(context.Background(), "emp-1", start, end)
	require.NoError(t, err)

	assert.Equal(t, "att-new", record.ID)
	assert.Equal(t, attendance.TypeAuto, record.Type)
	assert.Equal(t, attendance.StatusComplete, record.Status)
	assert.Equal(t, 8.0, record.TotalHours)
	require.Len(t, attRepo.created, 1)
	assert.Empty(t, attRepo.deleted)
	assert.Equal(t, 1, bioRepo.marked)
}

func TestReconcileDay_ReplacesStaleRecord(t *testing.T) {
	t.Parallel()

	in := ts(t, "2025-03-04 09:00:00")
	out := ts(t, "2025-03-04 17:00:00")
	staleIn := ts(t, "2025-03-04 09:30:00")
	attRepo := &fakeAttendanceRepo{
		existing: &attendance.Attendance{ID: "att-stale", CheckIn: &staleIn, CheckOut: &out},
	}
	bioRepo := &fakeBiometricRepo{
		first: &attendance.BiometricEvent{ID: "ev-1", RecordedAt: in},
		last:  &attendance.BiometricEvent{ID: "ev-2", RecordedAt: out},
	}
	r := NewReconciler(fakeTxManager{}, attRepo, bioRepo, &fakeWorkingHoursRepo{wh: weekdaySchedule(t)}, testClassifier())

	start, end := dayBounds(in)
	_, err := r.ReconcileDay(context.Background(), "emp-1", start, end)
	require.NoError(t, err)

	assert.Equal(t, []string{"att-stale"}, attRepo.deleted)
	require.Len(t, attRepo.created, 1)
}

func TestReconcileDay_IdenticalPairPerformsNoWrites(t *testing.T) {
	t.Parallel()

	in := ts(t, "2025-03-04 09:00:00")
	out := ts(t, "2025-03-04 17:00:00")
	attRepo := &fakeAttendanceRepo{
		existing: &attendance.Attendance{ID: "att-1", CheckIn: &in, CheckOut: &out},
	}
	bioRepo := &fakeBiometricRepo{
		first: &attendance.BiometricEvent{ID: "ev-1", RecordedAt: in},
		last:  &attendance.BiometricEvent{ID: "ev-2", RecordedAt: out},
	}
	r := NewReconciler(fakeTxManager{}, attRepo, bioRepo, &fakeWorkingHoursRepo{wh: weekdaySchedule(t)}, testClassifier())

	start, end := dayBounds(in)
	_, err := r.ReconcileDay(context.Background(), "emp-1", start, end)
	assert.ErrorIs(t, err, attendance.ErrAlreadyProcessed)

	assert.Empty(t, attRepo.created)
	assert.Empty(t, attRepo.deleted)
	assert.Zero(t, bioRepo.marked)
}

func TestReconcileDay_MissingEvents(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	start, end := dayBounds(day)

	r := NewReconciler(fakeTxManager{}, &fakeAttendanceRepo{}, &fakeBiometricRepo{},
		&fakeWorkingHoursRepo{wh: weekdaySchedule(t)}, testClassifier())
	_, err := r.ReconcileDay(context.Background(), "emp-1", start, end)
	assert.ErrorIs(t, err, attendance.ErrNoCheckInFound)

	in := ts(t, "2025-03-04 09:00:00")
	r = NewReconciler(fakeTxManager{}, &fakeAttendanceRepo{}, &fakeBiometricRepo{
		first: &attendance.BiometricEvent{ID: "ev-1", RecordedAt: in},
	}, &fakeWorkingHoursRepo{wh: weekdaySchedule(t)}, testClassifier())
	_, err = r.ReconcileDay(context.Background(), "emp-1", start, end)
	assert.ErrorIs(t, err, attendance.ErrNoCheckOutFound)
}
