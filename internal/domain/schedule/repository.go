package schedule

import "context"

// WorkingHoursRepository defines data access for weekly working-hour templates.
type WorkingHoursRepository interface {
	Create(ctx context.Context, wh WorkingHours) (WorkingHours, error)
	Update(ctx context.Context, wh WorkingHours) error
	GetByID(ctx context.Context, id string) (WorkingHours, error)
	List(ctx context.Context) ([]WorkingHours, error)

	// GetForEmployee resolves the template assigned to an employee's
	// organization. ErrNoWorkingHours when none is assigned.
	GetForEmployee(ctx context.Context, employeeID string) (WorkingHours, error)
}
