package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNoActiveSalary   = errors.New("no active salary configured for employee")
)
