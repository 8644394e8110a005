package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/kantoria/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/daterange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStoreRepo keeps records by id with day-aware lookups, unlike the
// single-slot fake the reconciler tests use.
type fakeStoreRepo struct {
	attendance.AttendanceRepository

	records map[string]attendance.Attendance
}

func newFakeStoreRepo(records ...attendance.Attendance) *fakeStoreRepo {
	f := &fakeStoreRepo{records: make(map[string]attendance.Attendance)}
	for _, att := range records {
		f.records[att.ID] = att
	}
	return f
}

func (f *fakeStoreRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	att, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (f *fakeStoreRepo) FindByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*attendance.Attendance, error) {
	for _, att := range f.records {
		if att.EmployeeID != employeeID || att.CheckIn == nil {
			continue
		}
		if daterange.Normalize(*att.CheckIn).Equal(day) {
			found := att
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeStoreRepo) Update(ctx context.Context, att attendance.Attendance) error {
	f.records[att.ID] = att
	return nil
}

func storedRecord(t *testing.T, id, employeeID, checkIn, checkOut string) attendance.Attendance {
	t.Helper()
	in := ts(t, checkIn)
	out := ts(t, checkOut)
	return attendance.Attendance{
		ID:         id,
		EmployeeID: employeeID,
		CheckIn:    &in,
		CheckOut:   &out,
		TotalHours: out.Sub(in).Hours(),
		Status:     attendance.StatusComplete,
		Type:       attendance.TypeManual,
	}
}

func newStoreService(t *testing.T, repo *fakeStoreRepo) attendance.AttendanceService {
	t.Helper()
	return NewAttendanceService(
		repo,
		nil,
		nil,
		&fakeWorkingHoursRepo{wh: weekdaySchedule(t)},
		nil,
		nil,
		testClassifier(),
		1,
		60,
	)
}

func strPtr(s string) *string { return &s }

func TestUpdate_RejectsMoveOntoOccupiedDay(t *testing.T) {
	t.Parallel()

	repo := newFakeStoreRepo(
		storedRecord(t, "att-a", "emp-1", "2025-03-03 09:00:00", "2025-03-03 17:00:00"),
		storedRecord(t, "att-b", "emp-1", "2025-03-04 09:00:00", "2025-03-04 17:00:00"),
	)
	svc := newStoreService(t, repo)

	_, err := svc.Update(context.Background(), attendance.UpdateAttendanceRequest{
		ID:       "att-a",
		CheckIn:  strPtr("2025-03-04 09:00:00"),
		CheckOut: strPtr("2025-03-04 17:00:00"),
	})
	require.ErrorIs(t, err, attendance.ErrExistsForDay)

	// The stored record did not move.
	kept := repo.records["att-a"]
	assert.Equal(t, ts(t, "2025-03-03 09:00:00"), *kept.CheckIn)
}

func TestUpdate_AllowsMoveOntoFreeDay(t *testing.T) {
	t.Parallel()

	repo := newFakeStoreRepo(
		storedRecord(t, "att-a", "emp-1", "2025-03-03 09:00:00", "2025-03-03 17:00:00"),
		storedRecord(t, "att-b", "emp-1", "2025-03-04 09:00:00", "2025-03-04 17:00:00"),
	)
	svc := newStoreService(t, repo)

	resp, err := svc.Update(context.Background(), attendance.UpdateAttendanceRequest{
		ID:       "att-a",
		CheckIn:  strPtr("2025-03-05 09:00:00"),
		CheckOut: strPtr("2025-03-05 17:00:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusComplete, resp.Status)
	assert.Equal(t, ts(t, "2025-03-05 09:00:00"), *repo.records["att-a"].CheckIn)
}

func TestUpdate_SameDayTimeChangeKeepsRecord(t *testing.T) {
	t.Parallel()

	repo := newFakeStoreRepo(
		storedRecord(t, "att-a", "emp-1", "2025-03-03 09:00:00", "2025-03-03 17:00:00"),
	)
	svc := newStoreService(t, repo)

	// Shortening the same day's shift must not trip the uniqueness check
	// against the record itself.
	resp, err := svc.Update(context.Background(), attendance.UpdateAttendanceRequest{
		ID:       "att-a",
		CheckOut: strPtr("2025-03-03 15:00:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusIncomplete, resp.Status)
	assert.Equal(t, 6.0, repo.records["att-a"].TotalHours)
}
