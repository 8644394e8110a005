package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActiveIDs returns the IDs of every active employee, the unit of
	// fan-out for batch payroll and reconciliation runs.
	ListActiveIDs(ctx context.Context) ([]string, error)
}

type SalaryRepository interface {
	// GetActiveSalary resolves the salary in effect as of the given date.
	// ErrNoActiveSalary when none covers it.
	GetActiveSalary(ctx context.Context, employeeID string, asOf time.Time) (Salary, error)
}
