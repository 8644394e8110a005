package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	Create(ctx context.Context, h PublicHoliday) (PublicHoliday, error)
	Delete(ctx context.Context, id string) error

	// ListInRange returns holidays with date in [from, to] inclusive.
	ListInRange(ctx context.Context, from, to time.Time) ([]PublicHoliday, error)
}
