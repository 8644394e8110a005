package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kantoria/hr-backoffice-go/internal/domain/cashadvance"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/database"
)

type installmentRepository struct {
	db *database.DB
}

func NewInstallmentRepository(db *database.DB) cashadvance.InstallmentRepository {
	return &installmentRepository{db: db}
}

func (r *installmentRepository) ListUnpaidDueInMonth(ctx context.Context, employeeID, monthYear string) ([]cashadvance.CashAdvanceInstallment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT i.id, i.cash_advance_request_id, i.month_year, i.installment_amount,
			   i.is_paid, i.paid_date, i.created_at
		FROM cash_advance_installments i
		JOIN cash_advance_requests a ON a.id = i.cash_advance_request_id
		WHERE a.employee_id = $1
		  AND a.status = 'paid_and_closed'
		  AND i.month_year = $2
		  AND i.is_paid = FALSE
		ORDER BY i.created_at
	`

	rows, err := q.Query(ctx, query, employeeID, monthYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list due installments: %w", err)
	}
	defer rows.Close()

	var result []cashadvance.CashAdvanceInstallment
	for rows.Next() {
		var inst cashadvance.CashAdvanceInstallment
		err := rows.Scan(
			&inst.ID, &inst.CashAdvanceRequestID, &inst.MonthYear, &inst.InstallmentAmount,
			&inst.IsPaid, &inst.PaidDate, &inst.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		result = append(result, inst)
	}
	return result, rows.Err()
}

func (r *installmentRepository) MarkPaid(ctx context.Context, id string, paidDate time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE cash_advance_installments
		SET is_paid = TRUE, paid_date = $2
		WHERE id = $1
	`

	if _, err := q.Exec(ctx, query, id, paidDate); err != nil {
		return fmt.Errorf("failed to mark installment paid: %w", err)
	}
	return nil
}

func (r *installmentRepository) MarkUnpaid(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE cash_advance_installments
		SET is_paid = FALSE, paid_date = NULL
		WHERE id = ANY($1)
	`

	if _, err := q.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("failed to mark installments unpaid: %w", err)
	}
	return nil
}

type cashAdvanceRequestRepository struct {
	db *database.DB
}

func NewCashAdvanceRequestRepository(db *database.DB) cashadvance.RequestRepository {
	return &cashAdvanceRequestRepository{db: db}
}

func (r *cashAdvanceRequestRepository) CreateRequest(ctx context.Context, req cashadvance.CashAdvanceRequest) (cashadvance.CashAdvanceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO cash_advance_requests (employee_id, amount, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, req.EmployeeID, req.Amount, req.Status).
		Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return cashadvance.CashAdvanceRequest{}, fmt.Errorf("failed to create cash advance request: %w", err)
	}
	return req, nil
}

func (r *cashAdvanceRequestRepository) GetRequestByID(ctx context.Context, id string) (cashadvance.CashAdvanceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, amount, status, created_at, updated_at
		FROM cash_advance_requests
		WHERE id = $1
	`

	var req cashadvance.CashAdvanceRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.Amount, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cashadvance.CashAdvanceRequest{}, cashadvance.ErrAdvanceNotFound
		}
		return cashadvance.CashAdvanceRequest{}, fmt.Errorf("failed to get cash advance request: %w", err)
	}
	return req, nil
}

func (r *cashAdvanceRequestRepository) UpdateRequestStatus(ctx context.Context, id string, status cashadvance.RequestStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE cash_advance_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update cash advance status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cashadvance.ErrAdvanceNotFound
	}
	return nil
}

func (r *cashAdvanceRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]cashadvance.CashAdvanceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, amount, status, created_at, updated_at
		FROM cash_advance_requests
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash advance requests: %w", err)
	}
	defer rows.Close()

	var result []cashadvance.CashAdvanceRequest
	for rows.Next() {
		var req cashadvance.CashAdvanceRequest
		err := rows.Scan(&req.ID, &req.EmployeeID, &req.Amount, &req.Status, &req.CreatedAt, &req.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash advance request: %w", err)
		}
		result = append(result, req)
	}
	return result, rows.Err()
}

func (r *cashAdvanceRequestRepository) CreateInstallments(ctx context.Context, installments []cashadvance.CashAdvanceInstallment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO cash_advance_installments (cash_advance_request_id, month_year, installment_amount)
		VALUES ($1, $2, $3)
	`

	for _, inst := range installments {
		if _, err := q.Exec(ctx, query, inst.CashAdvanceRequestID, inst.MonthYear, inst.InstallmentAmount); err != nil {
			return fmt.Errorf("failed to create installment: %w", err)
		}
	}
	return nil
}

func (r *cashAdvanceRequestRepository) ListInstallmentsByRequest(ctx context.Context, requestID string) ([]cashadvance.CashAdvanceInstallment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, cash_advance_request_id, month_year, installment_amount, is_paid, paid_date, created_at
		FROM cash_advance_installments
		WHERE cash_advance_request_id = $1
		ORDER BY month_year
	`

	rows, err := q.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	defer rows.Close()

	var result []cashadvance.CashAdvanceInstallment
	for rows.Next() {
		var inst cashadvance.CashAdvanceInstallment
		err := rows.Scan(
			&inst.ID, &inst.CashAdvanceRequestID, &inst.MonthYear, &inst.InstallmentAmount,
			&inst.IsPaid, &inst.PaidDate, &inst.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		result = append(result, inst)
	}
	return result, rows.Err()
}
