package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kantoria/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/database"
)

type biometricEventRepository struct {
	db *database.DB
}

func NewBiometricEventRepository(db *database.DB) attendance.BiometricEventRepository {
	return &biometricEventRepository{db: db}
}

func (r *biometricEventRepository) FirstUnprocessed(ctx context.Context, employeeID string, from, to time.Time) (*attendance.BiometricEvent, error) {
	return r.edgeUnprocessed(ctx, employeeID, from, to, "ASC")
}

func (r *biometricEventRepository) LastUnprocessed(ctx context.Context, employeeID string, from, to time.Time) (*attendance.BiometricEvent, error) {
	return r.edgeUnprocessed(ctx, employeeID, from, to, "DESC")
}

func (r *biometricEventRepository) edgeUnprocessed(ctx context.Context, employeeID string, from, to time.Time, order string) (*attendance.BiometricEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, recorded_at, device_id, is_processed, created_at
		FROM biometric_events
		WHERE employee_id = $1
		  AND recorded_at >= $2
		  AND recorded_at <= $3
		  AND is_processed = FALSE
		ORDER BY recorded_at ` + order + `
		LIMIT 1
	`

	var event attendance.BiometricEvent
	err := q.QueryRow(ctx, query, employeeID, from, to).Scan(
		&event.ID, &event.EmployeeID, &event.RecordedAt, &event.DeviceID,
		&event.IsProcessed, &event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get unprocessed biometric event: %w", err)
	}
	return &event, nil
}

func (r *biometricEventRepository) MarkProcessedInRange(ctx context.Context, employeeID string, from, to time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE biometric_events
		SET is_processed = TRUE
		WHERE employee_id = $1
		  AND recorded_at >= $2
		  AND recorded_at <= $3
		  AND is_processed = FALSE
	`

	if _, err := q.Exec(ctx, query, employeeID, from, to); err != nil {
		return fmt.Errorf("failed to mark biometric events processed: %w", err)
	}
	return nil
}

func (r *biometricEventRepository) Create(ctx context.Context, event attendance.BiometricEvent) (attendance.BiometricEvent, error) {
	q := GetQuerier(ctx, r.db)

	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	query := `
		INSERT INTO biometric_events (id, employee_id, recorded_at, device_id)
		VALUES ($1, $2, $3, $4)
		RETURNING is_processed, created_at
	`

	err := q.QueryRow(ctx, query, event.ID, event.EmployeeID, event.RecordedAt, event.DeviceID).
		Scan(&event.IsProcessed, &event.CreatedAt)
	if err != nil {
		return attendance.BiometricEvent{}, fmt.Errorf("failed to create biometric event: %w", err)
	}
	return event, nil
}
