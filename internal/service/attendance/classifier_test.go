package attendance

import (
	"testing"

	"github.com/kantoria/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClassifier() Classifier {
	return Classifier{GraceHours: 0.25, LateGraceHours: 1}
}

func TestClassify_ClosedDayIsOff(t *testing.T) {
	t.Parallel()

	status, deduction, err := testClassifier().Classify(schedule.DaySchedule{Closed: true}, 8)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOff, status)
	assert.True(t, deduction.IsZero())
}

func TestClassify_NoWorkIsAbsent(t *testing.T) {
	t.Parallel()

	status, deduction, err := testClassifier().Classify(schedule.DaySchedule{TotalHours: 8}, 0)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, status)
	assert.True(t, deduction.IsZero())
}

func TestClassify_WithinGraceIsComplete(t *testing.T) {
	t.Parallel()

	day := schedule.DaySchedule{TotalHours: 8}
	c := testClassifier()

	for _, worked := range []float64{8, 8.5, 7.75} {
		status, deduction, err := c.Classify(day, worked)
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusComplete, status, "worked %v", worked)
		assert.True(t, deduction.IsZero())
	}
}

func TestClassify_WithinLateGraceIsLate(t *testing.T) {
	t.Parallel()

	day := schedule.DaySchedule{TotalHours: 8}
	c := testClassifier()

	for _, worked := range []float64{7.7, 7.25, 7} {
		status, deduction, err := c.Classify(day, worked)
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusLate, status, "worked %v", worked)
		assert.True(t, deduction.IsZero())
	}
}

func TestClassify_ShortDayIsIncompleteWithProRatedDeduction(t *testing.T) {
	t.Parallel()

	day := schedule.DaySchedule{TotalHours: 8}
	status, deduction, err := testClassifier().Classify(day, 6)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusIncomplete, status)
	assert.True(t, decimal.NewFromFloat(0.25).Equal(deduction), "got %s", deduction)
}

func TestClassify_DeductionRoundsToSixDecimals(t *testing.T) {
	t.Parallel()

	day := schedule.DaySchedule{TotalHours: 7}
	status, deduction, err := testClassifier().Classify(day, 5)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusIncomplete, status)
	// 1 - 5/7 = 0.285714...
	assert.True(t, decimal.NewFromFloat(0.285714).Equal(deduction), "got %s", deduction)
}

func TestClassify_ZeroScheduledHoursIsAnError(t *testing.T) {
	t.Parallel()

	_, _, err := testClassifier().Classify(schedule.DaySchedule{TotalHours: 0}, 4)
	assert.ErrorIs(t, err, schedule.ErrZeroScheduledHours)
}
