package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kantoria/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/database"
)

const attendanceColumns = `id, employee_id, check_in, check_out, total_hours, status,
	pro_rated_deduction, type, note, added_by, modified_by, created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee_id, check_in, check_out, total_hours, status,
			pro_rated_deduction, type, note, added_by, modified_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID,
		att.CheckIn,
		att.CheckOut,
		att.TotalHours,
		att.Status,
		att.ProRatedDeduction,
		att.Type,
		att.Note,
		att.AddedBy,
		att.ModifiedBy,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return att, nil
}

func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in = $2, check_out = $3, total_hours = $4, status = $5,
			pro_rated_deduction = $6, note = $7, modified_by = $8, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.CheckIn,
		att.CheckOut,
		att.TotalHours,
		att.Status,
		att.ProRatedDeduction,
		att.Note,
		att.ModifiedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return att, nil
}

func (r *attendanceRepository) FindByEmployeeAndDateRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND check_in >= $2
		  AND check_in <= $3
		ORDER BY check_in
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}
	return result, rows.Err()
}

func (r *attendanceRepository) FindByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND check_in >= $2
		  AND check_in < $2 + INTERVAL '1 day'
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance for day: %w", err)
	}
	return &att, nil
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.CheckIn, &att.CheckOut, &att.TotalHours, &att.Status,
		&att.ProRatedDeduction, &att.Type, &att.Note, &att.AddedBy, &att.ModifiedBy,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}
