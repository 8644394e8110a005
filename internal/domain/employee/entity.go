package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID             string
	UserID         *string
	FullName       string
	Code           string
	WorkingHoursID *string
	IsActive       bool
	JoinedDate     time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Salary is one compensation period. The active salary as of a date is the
// one whose [EffectiveFrom, EndDate) window contains it.
type Salary struct {
	ID            string
	EmployeeID    string
	Amount        decimal.Decimal
	EffectiveFrom time.Time
	EndDate       *time.Time
	CreatedAt     time.Time
}
