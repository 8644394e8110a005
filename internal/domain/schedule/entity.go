package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// OpeningHours describes one weekday of a weekly working-hour template.
// Day follows time.Weekday numbering (0 = Sunday).
type OpeningHours struct {
	Day        int     `json:"day"`
	Open       string  `json:"open,omitempty"`
	Close      string  `json:"close,omitempty"`
	Closed     bool    `json:"closed"`
	TotalHours float64 `json:"total_hours"`
}

// WeekDays is the validated fixed-size weekly schedule, indexed by weekday.
type WeekDays [7]OpeningHours

// WorkingHours is an organization's weekly working-hour template.
type WorkingHours struct {
	ID        string
	Title     string
	Days      WeekDays
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DaySchedule is the resolved expectation for a single weekday.
type DaySchedule struct {
	Closed     bool
	TotalHours float64
}

// ResolveDay returns whether the weekday is closed and its expected hours.
func (w WorkingHours) ResolveDay(weekday time.Weekday) (DaySchedule, error) {
	d := int(weekday)
	if d < 0 || d > 6 {
		return DaySchedule{}, ErrNoWorkingHours
	}
	entry := w.Days[d]
	// A populated open day always carries positive hours, so this also
	// rejects the zero-value Sunday slot, which Day != d cannot catch.
	if entry.Day != d || (!entry.Closed && entry.TotalHours <= 0) {
		return DaySchedule{}, fmt.Errorf("%w: weekday %d", ErrNoWorkingHours, d)
	}
	return DaySchedule{Closed: entry.Closed, TotalHours: entry.TotalHours}, nil
}

// Value implements driver.Valuer so WeekDays persists as JSONB.
func (d WeekDays) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner. The stored blob must contain exactly one entry
// per weekday; anything else is rejected at the deserialization boundary.
func (d *WeekDays) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for WeekDays")
	}

	var entries []OpeningHours
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("decode working hours: %w", err)
	}
	week, err := NewWeekDays(entries)
	if err != nil {
		return err
	}
	*d = week
	return nil
}

// NewWeekDays builds the validated weekly array from a raw entry list.
func NewWeekDays(entries []OpeningHours) (WeekDays, error) {
	var week WeekDays
	if len(entries) != 7 {
		return week, fmt.Errorf("%w: got %d entries, want 7", ErrIncompleteWeek, len(entries))
	}
	seen := [7]bool{}
	for _, e := range entries {
		if e.Day < 0 || e.Day > 6 {
			return week, fmt.Errorf("%w: weekday %d out of range", ErrIncompleteWeek, e.Day)
		}
		if seen[e.Day] {
			return week, fmt.Errorf("%w: duplicate weekday %d", ErrIncompleteWeek, e.Day)
		}
		seen[e.Day] = true
		week[e.Day] = e
	}
	return week, nil
}

// HoursBetween computes scheduled hours from "15:04" open/close strings.
func HoursBetween(open, close string) (float64, error) {
	openT, err := time.Parse("15:04", open)
	if err != nil {
		return 0, fmt.Errorf("invalid open time %q: %w", open, err)
	}
	closeT, err := time.Parse("15:04", close)
	if err != nil {
		return 0, fmt.Errorf("invalid close time %q: %w", close, err)
	}
	if !closeT.After(openT) {
		return 0, fmt.Errorf("close time %q is not after open time %q", close, open)
	}
	return closeT.Sub(openT).Hours(), nil
}
