package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kantoria/hr-backoffice-go/internal/domain/holiday"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) Create(ctx context.Context, h holiday.PublicHoliday) (holiday.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO public_holidays (date, name)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, h.Date, h.Name).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return holiday.PublicHoliday{}, holiday.ErrHolidayExists
		}
		return holiday.PublicHoliday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return h, nil
}

func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM public_holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

func (r *holidayRepository) ListInRange(ctx context.Context, from, to time.Time) ([]holiday.PublicHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, name, created_at
		FROM public_holidays
		WHERE date >= $1 AND date <= $2
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var result []holiday.PublicHoliday
	for rows.Next() {
		var h holiday.PublicHoliday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		result = append(result, h)
	}
	return result, rows.Err()
}
