package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullWeek(t *testing.T) WeekDays {
	t.Helper()
	entries := []OpeningHours{
		{Day: 0, Closed: true},
		{Day: 6, Closed: true},
	}
	for d := 1; d <= 5; d++ {
		entries = append(entries, OpeningHours{Day: d, Open: "09:00", Close: "17:00", TotalHours: 8})
	}
	week, err := NewWeekDays(entries)
	require.NoError(t, err)
	return week
}

func TestResolveDay(t *testing.T) {
	t.Parallel()

	wh := WorkingHours{Days: fullWeek(t)}

	sched, err := wh.ResolveDay(time.Monday)
	require.NoError(t, err)
	assert.False(t, sched.Closed)
	assert.Equal(t, 8.0, sched.TotalHours)

	sched, err = wh.ResolveDay(time.Sunday)
	require.NoError(t, err)
	assert.True(t, sched.Closed)
}

func TestResolveDay_UnpopulatedWeek(t *testing.T) {
	t.Parallel()

	// A zero-value schedule must not resolve any weekday, Sunday included:
	// its slot's zero Day value matches Sunday's index.
	var wh WorkingHours
	for d := time.Sunday; d <= time.Saturday; d++ {
		_, err := wh.ResolveDay(d)
		assert.ErrorIs(t, err, ErrNoWorkingHours, "weekday %v", d)
	}
}

func TestNewWeekDays_RejectsIncompleteWeeks(t *testing.T) {
	t.Parallel()

	_, err := NewWeekDays([]OpeningHours{{Day: 1, TotalHours: 8}})
	assert.ErrorIs(t, err, ErrIncompleteWeek)

	entries := []OpeningHours{
		{Day: 0, Closed: true}, {Day: 0, Closed: true},
		{Day: 2, Closed: true}, {Day: 3, Closed: true},
		{Day: 4, Closed: true}, {Day: 5, Closed: true},
		{Day: 6, Closed: true},
	}
	_, err = NewWeekDays(entries)
	assert.ErrorIs(t, err, ErrIncompleteWeek)
}
