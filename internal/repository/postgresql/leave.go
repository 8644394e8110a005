package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kantoria/hr-backoffice-go/internal/domain/leave"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (employee_id, leave_from, leave_to, status, is_paid, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.LeaveFrom, req.LeaveTo, req.Status, req.IsPaid, req.Reason,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return req, nil
}

func (r *leaveRequestRepository) Update(ctx context.Context, req leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET leave_from = $2, leave_to = $3, status = $4, is_paid = $5, reason = $6,
			decided_by = $7, decided_at = $8, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		req.ID, req.LeaveFrom, req.LeaveTo, req.Status, req.IsPaid, req.Reason,
		req.DecidedBy, req.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_from, leave_to, status, is_paid, reason,
			   decided_by, decided_at, created_at, updated_at
		FROM leave_requests
		WHERE id = $1
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.LeaveFrom, &req.LeaveTo, &req.Status, &req.IsPaid,
		&req.Reason, &req.DecidedBy, &req.DecidedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

func (r *leaveRequestRepository) ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_from, leave_to, status, is_paid, reason,
			   decided_by, decided_at, created_at, updated_at
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = 'approved'
		  AND leave_from <= $3
		  AND leave_to >= $2
		ORDER BY leave_from
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave requests: %w", err)
	}
	defer rows.Close()

	var result []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.LeaveFrom, &req.LeaveTo, &req.Status, &req.IsPaid,
			&req.Reason, &req.DecidedBy, &req.DecidedAt, &req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		result = append(result, req)
	}
	return result, rows.Err()
}

type leaveCreditRepository struct {
	db *database.DB
}

func NewLeaveCreditRepository(db *database.DB) leave.LeaveCreditRepository {
	return &leaveCreditRepository{db: db}
}

func (r *leaveCreditRepository) Create(ctx context.Context, credit leave.LeaveCredit) (leave.LeaveCredit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_credits (employee_id, days, note, granted_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, credit.EmployeeID, credit.Days, credit.Note, credit.GrantedAt).
		Scan(&credit.ID, &credit.CreatedAt)
	if err != nil {
		return leave.LeaveCredit{}, fmt.Errorf("failed to create leave credit: %w", err)
	}
	return credit, nil
}

func (r *leaveCreditRepository) TotalGranted(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COALESCE(SUM(days), 0) FROM leave_credits WHERE employee_id = $1`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum leave credits: %w", err)
	}
	return total, nil
}
