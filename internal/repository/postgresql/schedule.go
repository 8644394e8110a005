package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kantoria/hr-backoffice-go/internal/domain/schedule"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/database"
)

type workingHoursRepository struct {
	db *database.DB
}

func NewWorkingHoursRepository(db *database.DB) schedule.WorkingHoursRepository {
	return &workingHoursRepository{db: db}
}

func (r *workingHoursRepository) Create(ctx context.Context, wh schedule.WorkingHours) (schedule.WorkingHours, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO working_hours (title, days)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, wh.Title, wh.Days).Scan(&wh.ID, &wh.CreatedAt, &wh.UpdatedAt)
	if err != nil {
		return schedule.WorkingHours{}, fmt.Errorf("failed to create working hours: %w", err)
	}
	return wh, nil
}

func (r *workingHoursRepository) Update(ctx context.Context, wh schedule.WorkingHours) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE working_hours
		SET title = $2, days = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, wh.ID, wh.Title, wh.Days)
	if err != nil {
		return fmt.Errorf("failed to update working hours: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrWorkingHoursNotFound
	}
	return nil
}

func (r *workingHoursRepository) GetByID(ctx context.Context, id string) (schedule.WorkingHours, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, days, created_at, updated_at
		FROM working_hours
		WHERE id = $1
	`

	var wh schedule.WorkingHours
	err := q.QueryRow(ctx, query, id).Scan(&wh.ID, &wh.Title, &wh.Days, &wh.CreatedAt, &wh.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkingHours{}, schedule.ErrWorkingHoursNotFound
		}
		return schedule.WorkingHours{}, fmt.Errorf("failed to get working hours: %w", err)
	}
	return wh, nil
}

func (r *workingHoursRepository) List(ctx context.Context) ([]schedule.WorkingHours, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, title, days, created_at, updated_at FROM working_hours ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("failed to list working hours: %w", err)
	}
	defer rows.Close()

	var result []schedule.WorkingHours
	for rows.Next() {
		var wh schedule.WorkingHours
		if err := rows.Scan(&wh.ID, &wh.Title, &wh.Days, &wh.CreatedAt, &wh.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan working hours: %w", err)
		}
		result = append(result, wh)
	}
	return result, rows.Err()
}

func (r *workingHoursRepository) GetForEmployee(ctx context.Context, employeeID string) (schedule.WorkingHours, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT w.id, w.title, w.days, w.created_at, w.updated_at
		FROM working_hours w
		JOIN employees e ON e.working_hours_id = w.id
		WHERE e.id = $1
	`

	var wh schedule.WorkingHours
	err := q.QueryRow(ctx, query, employeeID).Scan(&wh.ID, &wh.Title, &wh.Days, &wh.CreatedAt, &wh.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkingHours{}, schedule.ErrNoWorkingHours
		}
		return schedule.WorkingHours{}, fmt.Errorf("failed to get working hours for employee: %w", err)
	}
	return wh, nil
}
