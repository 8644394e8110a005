package attendance

import (
	"fmt"

	"github.com/kantoria/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

// deductionPrecision is the rounding applied to pro-rated deduction fractions.
const deductionPrecision = 6

// Classifier turns a day's worked hours into an attendance status. The two
// grace margins are expressed in hours of scheduled work.
type Classifier struct {
	GraceHours     float64
	LateGraceHours float64
}

// Classify applies the ordered rules, first match wins:
// closed day, no work, within grace, within late grace, incomplete.
// The deduction fraction is non-zero only for incomplete days.
func (c Classifier) Classify(day schedule.DaySchedule, workedHours float64) (attendance.Status, decimal.Decimal, error) {
	if day.Closed {
		return attendance.StatusOff, decimal.Zero, nil
	}
	if workedHours == 0 {
		return attendance.StatusAbsent, decimal.Zero, nil
	}
	if day.TotalHours <= 0 {
		return "", decimal.Zero, fmt.Errorf("%w: cannot classify %0.2f worked hours", schedule.ErrZeroScheduledHours, workedHours)
	}
	if workedHours >= day.TotalHours-c.GraceHours {
		return attendance.StatusComplete, decimal.Zero, nil
	}
	if workedHours >= day.TotalHours-c.LateGraceHours {
		return attendance.StatusLate, decimal.Zero, nil
	}

	fraction := decimal.NewFromFloat(1 - workedHours/day.TotalHours).Round(deductionPrecision)
	return attendance.StatusIncomplete, fraction, nil
}
