package payroll

import "errors"

var (
	ErrCycleNotFound          = errors.New("payroll cycle not found")
	ErrCycleAlreadyProcessing = errors.New("payroll cycle is already being processed")
	ErrCycleTooLong           = errors.New("payroll cycle exceeds the allowed number of days")
	ErrDuplicatePayroll       = errors.New("payroll already exists for this employee and cycle")
	ErrPayrollNotFound        = errors.New("payroll record not found")
	ErrPayrollAlreadyPaid     = errors.New("payroll already paid, cannot modify")
)
