package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kantoria/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/employee"
	"github.com/kantoria/hr-backoffice-go/internal/domain/holiday"
	"github.com/kantoria/hr-backoffice-go/internal/domain/leave"
	"github.com/kantoria/hr-backoffice-go/internal/domain/schedule"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/daterange"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/validator"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/workerpool"
)

type AttendanceServiceImpl struct {
	attendanceRepo   attendance.AttendanceRepository
	holidayRepo      holiday.HolidayRepository
	leaveRepo        leave.LeaveRequestRepository
	workingHoursRepo schedule.WorkingHoursRepository
	employeeRepo     employee.EmployeeRepository
	reconciler       *Reconciler
	classifier       Classifier
	batchWorkers     int
	policyWindowDays int
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	holidayRepo holiday.HolidayRepository,
	leaveRepo leave.LeaveRequestRepository,
	workingHoursRepo schedule.WorkingHoursRepository,
	employeeRepo employee.EmployeeRepository,
	reconciler *Reconciler,
	classifier Classifier,
	batchWorkers int,
	policyWindowDays int,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo:   attendanceRepo,
		holidayRepo:      holidayRepo,
		leaveRepo:        leaveRepo,
		workingHoursRepo: workingHoursRepo,
		employeeRepo:     employeeRepo,
		reconciler:       reconciler,
		classifier:       classifier,
		batchWorkers:     batchWorkers,
		policyWindowDays: policyWindowDays,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func mapToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                att.ID,
		EmployeeID:        att.EmployeeID,
		CheckIn:           timePtrToString(att.CheckIn),
		CheckOut:          timePtrToString(att.CheckOut),
		TotalHours:        att.TotalHours,
		Status:            att.Status,
		ProRatedDeduction: att.ProRatedDeduction.String(),
		Type:              att.Type,
		Note:              att.Note,
		CreatedAt:         att.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         att.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func addedByFromContext(ctx context.Context) *string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil
	}
	return &userID
}

// Create implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Create(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	checkIn, checkOut, err := req.Validate()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	day := daterange.Normalize(checkIn)
	existing, err := a.attendanceRepo.FindByEmployeeAndDay(ctx, req.EmployeeID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrExistsForDay
	}

	wh, err := a.workingHoursRepo.GetForEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	daySched, err := wh.ResolveDay(day.Weekday())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	workedHours := checkOut.Sub(checkIn).Hours()
	status, deduction, err := a.classifier.Classify(daySched, workedHours)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record := attendance.Attendance{
		EmployeeID:        req.EmployeeID,
		CheckIn:           &checkIn,
		CheckOut:          &checkOut,
		TotalHours:        workedHours,
		Status:            status,
		ProRatedDeduction: deduction,
		Type:              attendance.TypeManual,
		Note:              req.Note,
		AddedBy:           addedByFromContext(ctx),
	}

	created, err := a.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("create attendance: %w", err)
	}
	return mapToResponse(created), nil
}

// Update implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	att, err := a.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.CheckIn != nil {
		parsed, parseErr := time.Parse("2006-01-02 15:04:05", *req.CheckIn)
		if parseErr != nil {
			return attendance.AttendanceResponse{}, validator.ValidationErrors{{Field: "check_in", Message: "must be formatted as 2006-01-02 15:04:05"}}
		}
		att.CheckIn = &parsed
	}
	if req.CheckOut != nil {
		parsed, parseErr := time.Parse("2006-01-02 15:04:05", *req.CheckOut)
		if parseErr != nil {
			return attendance.AttendanceResponse{}, validator.ValidationErrors{{Field: "check_out", Message: "must be formatted as 2006-01-02 15:04:05"}}
		}
		att.CheckOut = &parsed
	}
	if req.Note != nil {
		att.Note = req.Note
	}

	if att.CheckIn == nil || att.CheckOut == nil || !att.CheckOut.After(*att.CheckIn) {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{{Field: "check_out", Message: "must be after check_in"}}
	}

	// The update may move the record onto another calendar day; that day must
	// not already hold a record for the employee.
	day := daterange.Normalize(*att.CheckIn)
	existing, err := a.attendanceRepo.FindByEmployeeAndDay(ctx, att.EmployeeID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("check existing attendance: %w", err)
	}
	if existing != nil && existing.ID != att.ID {
		return attendance.AttendanceResponse{}, attendance.ErrExistsForDay
	}

	wh, err := a.workingHoursRepo.GetForEmployee(ctx, att.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	daySched, err := wh.ResolveDay(att.CheckIn.Weekday())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att.TotalHours = att.CheckOut.Sub(*att.CheckIn).Hours()
	status, deduction, err := a.classifier.Classify(daySched, att.TotalHours)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	att.Status = status
	att.ProRatedDeduction = deduction
	att.ModifiedBy = addedByFromContext(ctx)

	if err := a.attendanceRepo.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("update attendance: %w", err)
	}
	return mapToResponse(att), nil
}

// Delete implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	return a.attendanceRepo.Delete(ctx, id)
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := a.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return mapToResponse(att), nil
}

// MonthRoster implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MonthRoster(ctx context.Context, req attendance.MonthRosterRequest) (attendance.RosterResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RosterResponse{}, err
	}
	from, to := daterange.MonthBounds(req.Year, time.Month(req.Month))
	return a.buildRoster(ctx, req.EmployeeID, from, to)
}

// RangeRoster implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RangeRoster(ctx context.Context, req attendance.RangeRosterRequest) (attendance.RosterResponse, error) {
	from, to, err := req.Validate()
	if err != nil {
		return attendance.RosterResponse{}, err
	}
	if daterange.DayCount(from, to) > a.policyWindowDays {
		return attendance.RosterResponse{}, validator.ValidationErrors{{
			Field:   "to",
			Message: fmt.Sprintf("range must not exceed %d days", a.policyWindowDays),
		}}
	}
	return a.buildRoster(ctx, req.EmployeeID, from, to)
}

func (a *AttendanceServiceImpl) buildRoster(ctx context.Context, employeeID string, from, to time.Time) (attendance.RosterResponse, error) {
	wh, err := a.workingHoursRepo.GetForEmployee(ctx, employeeID)
	if err != nil {
		return attendance.RosterResponse{}, err
	}
	rows, err := a.attendanceRepo.FindByEmployeeAndDateRange(ctx, employeeID, from, to.AddDate(0, 0, 1))
	if err != nil {
		return attendance.RosterResponse{}, fmt.Errorf("load attendance rows: %w", err)
	}
	holidays, err := a.holidayRepo.ListInRange(ctx, from, to)
	if err != nil {
		return attendance.RosterResponse{}, fmt.Errorf("load holidays: %w", err)
	}
	leaves, err := a.leaveRepo.ListApprovedInRange(ctx, employeeID, from, to)
	if err != nil {
		return attendance.RosterResponse{}, fmt.Errorf("load leave requests: %w", err)
	}

	records, err := BuildRangeRoster(from, to, RosterInput{
		EmployeeID: employeeID,
		Rows:       rows,
		Holidays:   holidays,
		Leaves:     leaves,
		Schedule:   wh,
	})
	if err != nil {
		return attendance.RosterResponse{}, err
	}

	return attendance.RosterResponse{
		EmployeeID: employeeID,
		From:       from.Format("2006-01-02"),
		To:         to.Format("2006-01-02"),
		Days:       records,
	}, nil
}

// ReconcileDay implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ReconcileDay(ctx context.Context, employeeID string, day time.Time) (attendance.AttendanceResponse, error) {
	dayStart := daterange.Normalize(day)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Second)
	record, err := a.reconciler.ReconcileDay(ctx, employeeID, dayStart, dayEnd)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return mapToResponse(record), nil
}

// ReconcileAll implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ReconcileAll(ctx context.Context, day time.Time) (int, error) {
	ids, err := a.employeeRepo.ListActiveIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active employees: %w", err)
	}

	// The batch runs detached from the request; outcome is visible in logs.
	go func() {
		report := workerpool.Run(context.Background(), ids, a.batchWorkers, func(ctx context.Context, employeeID string) error {
			_, err := a.ReconcileDay(ctx, employeeID, day)
			if errors.Is(err, attendance.ErrAlreadyProcessed) {
				return nil
			}
			return err
		})
		slog.Info("biometric reconciliation batch finished",
			"day", day.Format("2006-01-02"),
			"processed", report.Processed,
			"succeeded", report.Succeeded,
			"failed", report.Failed,
		)
	}()

	return len(ids), nil
}
