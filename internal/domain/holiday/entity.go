package holiday

import "time"

// PublicHoliday is immutable reference data consumed by the attendance
// assembler and the payroll processor.
type PublicHoliday struct {
	ID        string
	Date      time.Time
	Name      string
	CreatedAt time.Time
}
