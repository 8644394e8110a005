package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kantoria/hr-backoffice-go/internal/domain/employee"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, full_name, code, working_hours_id, is_active, joined_date,
			   created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.UserID, &emp.FullName, &emp.Code, &emp.WorkingHoursID,
		&emp.IsActive, &emp.JoinedDate, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

func (r *employeeRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM employees WHERE is_active = TRUE ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) employee.SalaryRepository {
	return &salaryRepository{db: db}
}

func (r *salaryRepository) GetActiveSalary(ctx context.Context, employeeID string, asOf time.Time) (employee.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, amount, effective_from, end_date, created_at
		FROM salaries
		WHERE employee_id = $1
		  AND effective_from <= $2
		  AND (end_date IS NULL OR end_date > $2)
		ORDER BY effective_from DESC
		LIMIT 1
	`

	var s employee.Salary
	err := q.QueryRow(ctx, query, employeeID, asOf).Scan(
		&s.ID, &s.EmployeeID, &s.Amount, &s.EffectiveFrom, &s.EndDate, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Salary{}, employee.ErrNoActiveSalary
		}
		return employee.Salary{}, fmt.Errorf("failed to get active salary: %w", err)
	}
	return s, nil
}
