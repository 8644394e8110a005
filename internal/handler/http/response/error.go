package response

import (
	"errors"
	"net/http"

	"github.com/kantoria/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/auth"
	"github.com/kantoria/hr-backoffice-go/internal/domain/cashadvance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/employee"
	"github.com/kantoria/hr-backoffice-go/internal/domain/holiday"
	"github.com/kantoria/hr-backoffice-go/internal/domain/leave"
	"github.com/kantoria/hr-backoffice-go/internal/domain/payroll"
	"github.com/kantoria/hr-backoffice-go/internal/domain/schedule"
	"github.com/kantoria/hr-backoffice-go/internal/domain/user"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing access token")
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrExistsForDay):
		Conflict(w, "An attendance record already exists for this day")
	case errors.Is(err, attendance.ErrNoCheckInFound):
		NotFound(w, "No unprocessed check-in event found for this day")
	case errors.Is(err, attendance.ErrNoCheckOutFound):
		NotFound(w, "No unprocessed check-out event found for this day")
	case errors.Is(err, attendance.ErrAlreadyProcessed):
		Conflict(w, "Biometric events for this day were already reconciled")

	// Schedule configuration errors
	case errors.Is(err, schedule.ErrWorkingHoursNotFound):
		NotFound(w, "Working hours template not found")
	case errors.Is(err, schedule.ErrNoWorkingHours):
		BadRequest(w, "No working hours configured for employee", nil)
	case errors.Is(err, schedule.ErrIncompleteWeek):
		BadRequest(w, "Working hours must define exactly one entry per weekday", nil)
	case errors.Is(err, schedule.ErrZeroScheduledHours):
		BadRequest(w, "Scheduled hours are zero for an open day", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrCycleNotFound):
		NotFound(w, "Payroll cycle not found")
	case errors.Is(err, payroll.ErrCycleAlreadyProcessing):
		Conflict(w, "Payroll cycle is already being processed")
	case errors.Is(err, payroll.ErrCycleTooLong):
		BadRequest(w, "Payroll cycle exceeds the allowed number of days", nil)
	case errors.Is(err, payroll.ErrDuplicatePayroll):
		Conflict(w, "Payroll already exists for this employee and cycle")
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollAlreadyPaid):
		Conflict(w, "Payroll has already been paid")

	// Reference data errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNoActiveSalary):
		BadRequest(w, "No active salary configured for employee", nil)
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Public holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A public holiday already exists on this date")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyDecided):
		Conflict(w, "Leave request has already been approved or rejected")
	case errors.Is(err, cashadvance.ErrAdvanceNotFound):
		NotFound(w, "Cash advance request not found")
	case errors.Is(err, cashadvance.ErrAlreadyDecided):
		Conflict(w, "Cash advance request has already been approved or rejected")
	case errors.Is(err, cashadvance.ErrAdvanceNotApproved):
		Conflict(w, "Cash advance request has not been approved")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
