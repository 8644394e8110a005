package daterange

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDays_InclusiveBounds(t *testing.T) {
	t.Parallel()

	days, err := Days(date(2026, time.January, 1), date(2026, time.January, 31), 40)
	require.NoError(t, err)
	require.Len(t, days, 31)
	assert.Equal(t, date(2026, time.January, 1), days[0])
	assert.Equal(t, date(2026, time.January, 31), days[30])
}

func TestDays_SingleDay(t *testing.T) {
	t.Parallel()

	days, err := Days(date(2026, time.March, 10), date(2026, time.March, 10), 40)
	require.NoError(t, err)
	require.Len(t, days, 1)
}

func TestDays_InvertedRange(t *testing.T) {
	t.Parallel()

	_, err := Days(date(2026, time.February, 2), date(2026, time.February, 1), 40)
	assert.ErrorIs(t, err, ErrInvertedRange)
}

func TestDays_FailsFastOverLimit(t *testing.T) {
	t.Parallel()

	_, err := Days(date(2026, time.January, 1), date(2026, time.March, 1), 40)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRangeTooLong)
}

func TestDays_NormalizesTimestamps(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, time.January, 1, 23, 15, 0, 0, time.UTC)
	to := time.Date(2026, time.January, 2, 0, 30, 0, 0, time.UTC)
	days, err := Days(from, to, 0)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 0, days[0].Hour())
}

func TestDayCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 31, DayCount(date(2026, time.January, 1), date(2026, time.January, 31)))
	assert.Equal(t, 1, DayCount(date(2026, time.January, 1), date(2026, time.January, 1)))
}

func TestMonthBounds(t *testing.T) {
	t.Parallel()

	first, last := MonthBounds(2024, time.February)
	assert.Equal(t, date(2024, time.February, 1), first)
	assert.Equal(t, date(2024, time.February, 29), last)
}

func TestSameDay(t *testing.T) {
	t.Parallel()

	a := time.Date(2026, time.May, 4, 8, 0, 0, 0, time.UTC)
	b := time.Date(2026, time.May, 4, 17, 30, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, b.AddDate(0, 0, 1)))
}

func TestErrorsWrap(t *testing.T) {
	t.Parallel()

	_, err := Days(date(2026, time.January, 10), date(2026, time.January, 1), 0)
	var target error = ErrInvertedRange
	assert.True(t, errors.Is(err, target))
}
