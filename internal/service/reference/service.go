// Package reference holds the thin business logic behind the engine's
// reference data: working-hour templates, public holidays, leave requests,
// leave credit grants and cash advances.
package reference

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kantoria/hr-backoffice-go/internal/domain/cashadvance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/holiday"
	"github.com/kantoria/hr-backoffice-go/internal/domain/leave"
	"github.com/kantoria/hr-backoffice-go/internal/domain/schedule"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/database"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/daterange"
	"github.com/shopspring/decimal"
)

type Service struct {
	txm              database.TxManager
	workingHoursRepo schedule.WorkingHoursRepository
	holidayRepo      holiday.HolidayRepository
	leaveRepo        leave.LeaveRequestRepository
	leaveCreditRepo  leave.LeaveCreditRepository
	cashAdvanceRepo  cashadvance.RequestRepository
}

func NewService(
	txm database.TxManager,
	workingHoursRepo schedule.WorkingHoursRepository,
	holidayRepo holiday.HolidayRepository,
	leaveRepo leave.LeaveRequestRepository,
	leaveCreditRepo leave.LeaveCreditRepository,
	cashAdvanceRepo cashadvance.RequestRepository,
) *Service {
	return &Service{
		txm:              txm,
		workingHoursRepo: workingHoursRepo,
		holidayRepo:      holidayRepo,
		leaveRepo:        leaveRepo,
		leaveCreditRepo:  leaveCreditRepo,
		cashAdvanceRepo:  cashAdvanceRepo,
	}
}

func (s *Service) CreateWorkingHours(ctx context.Context, req schedule.CreateWorkingHoursRequest) (schedule.WorkingHoursResponse, error) {
	week, err := req.Validate()
	if err != nil {
		return schedule.WorkingHoursResponse{}, err
	}
	wh, err := s.workingHoursRepo.Create(ctx, schedule.WorkingHours{Title: req.Title, Days: week})
	if err != nil {
		return schedule.WorkingHoursResponse{}, err
	}
	return schedule.ToResponse(wh), nil
}

func (s *Service) UpdateWorkingHours(ctx context.Context, id string, req schedule.CreateWorkingHoursRequest) (schedule.WorkingHoursResponse, error) {
	week, err := req.Validate()
	if err != nil {
		return schedule.WorkingHoursResponse{}, err
	}
	wh, err := s.workingHoursRepo.GetByID(ctx, id)
	if err != nil {
		return schedule.WorkingHoursResponse{}, err
	}
	wh.Title = req.Title
	wh.Days = week
	if err := s.workingHoursRepo.Update(ctx, wh); err != nil {
		return schedule.WorkingHoursResponse{}, err
	}
	return schedule.ToResponse(wh), nil
}

func (s *Service) GetWorkingHours(ctx context.Context, id string) (schedule.WorkingHoursResponse, error) {
	wh, err := s.workingHoursRepo.GetByID(ctx, id)
	if err != nil {
		return schedule.WorkingHoursResponse{}, err
	}
	return schedule.ToResponse(wh), nil
}

func (s *Service) ListWorkingHours(ctx context.Context) ([]schedule.WorkingHoursResponse, error) {
	list, err := s.workingHoursRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]schedule.WorkingHoursResponse, 0, len(list))
	for _, wh := range list {
		resp = append(resp, schedule.ToResponse(wh))
	}
	return resp, nil
}

func (s *Service) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	date, err := req.Validate()
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	h, err := s.holidayRepo.Create(ctx, holiday.PublicHoliday{Date: daterange.Normalize(date), Name: req.Name})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return holiday.ToResponse(h), nil
}

func (s *Service) DeleteHoliday(ctx context.Context, id string) error {
	return s.holidayRepo.Delete(ctx, id)
}

func (s *Service) ListHolidays(ctx context.Context, from, to time.Time) ([]holiday.HolidayResponse, error) {
	list, err := s.holidayRepo.ListInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	resp := make([]holiday.HolidayResponse, 0, len(list))
	for _, h := range list {
		resp = append(resp, holiday.ToResponse(h))
	}
	return resp, nil
}

func (s *Service) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveRequestResponse, error) {
	from, to, err := req.Validate()
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID: req.EmployeeID,
		LeaveFrom:  daterange.Normalize(from),
		LeaveTo:    daterange.Normalize(to),
		Status:     leave.StatusPending,
		IsPaid:     req.IsPaid,
		Reason:     req.Reason,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.ToResponse(created), nil
}

// DecideLeaveRequest approves or rejects a pending request. The deciding user
// comes from the JWT claims.
func (s *Service) DecideLeaveRequest(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveRequestResponse, error) {
	lr, err := s.leaveRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if lr.Status != leave.StatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrAlreadyDecided
	}

	if req.Approve {
		lr.Status = leave.StatusApproved
	} else {
		lr.Status = leave.StatusRejected
	}
	now := time.Now().UTC()
	lr.DecidedAt = &now
	if _, claims, err := jwtauth.FromContext(ctx); err == nil {
		if userID, ok := claims["user_id"].(string); ok {
			lr.DecidedBy = &userID
		}
	}

	if err := s.leaveRepo.Update(ctx, lr); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.ToResponse(lr), nil
}

func (s *Service) GrantLeaveCredit(ctx context.Context, req leave.GrantLeaveCreditRequest) (leave.LeaveCredit, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveCredit{}, err
	}
	return s.leaveCreditRepo.Create(ctx, leave.LeaveCredit{
		EmployeeID: req.EmployeeID,
		Days:       req.Days,
		Note:       req.Note,
		GrantedAt:  time.Now().UTC(),
	})
}

// CreateCashAdvance stores the request with an equal-installment repayment
// schedule. The last installment absorbs the rounding remainder.
func (s *Service) CreateCashAdvance(ctx context.Context, req cashadvance.CreateCashAdvanceRequest) (cashadvance.CashAdvanceResponse, error) {
	firstMonth, err := req.Validate()
	if err != nil {
		return cashadvance.CashAdvanceResponse{}, err
	}

	months := int64(req.Months)
	per := req.Amount.DivRound(decimal.NewFromInt(months), 2)
	last := req.Amount.Sub(per.Mul(decimal.NewFromInt(months - 1)))

	var created cashadvance.CashAdvanceRequest
	err = s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.cashAdvanceRepo.CreateRequest(ctx, cashadvance.CashAdvanceRequest{
			EmployeeID: req.EmployeeID,
			Amount:     req.Amount,
			Status:     cashadvance.StatusPending,
		})
		if err != nil {
			return err
		}

		installments := make([]cashadvance.CashAdvanceInstallment, 0, req.Months)
		for i := 0; i < req.Months; i++ {
			amount := per
			if i == req.Months-1 {
				amount = last
			}
			installments = append(installments, cashadvance.CashAdvanceInstallment{
				CashAdvanceRequestID: created.ID,
				MonthYear:            firstMonth.AddDate(0, i, 0).Format("2006-01"),
				InstallmentAmount:    amount,
			})
		}
		return s.cashAdvanceRepo.CreateInstallments(ctx, installments)
	})
	if err != nil {
		return cashadvance.CashAdvanceResponse{}, err
	}

	installments, err := s.cashAdvanceRepo.ListInstallmentsByRequest(ctx, created.ID)
	if err != nil {
		return cashadvance.CashAdvanceResponse{}, err
	}
	return cashadvance.ToResponse(created, installments), nil
}

func (s *Service) DecideCashAdvance(ctx context.Context, req cashadvance.DecideCashAdvanceRequest) (cashadvance.CashAdvanceResponse, error) {
	adv, err := s.cashAdvanceRepo.GetRequestByID(ctx, req.ID)
	if err != nil {
		return cashadvance.CashAdvanceResponse{}, err
	}
	if adv.Status != cashadvance.StatusPending {
		return cashadvance.CashAdvanceResponse{}, cashadvance.ErrAlreadyDecided
	}

	if req.Approve {
		adv.Status = cashadvance.StatusApproved
	} else {
		adv.Status = cashadvance.StatusRejected
	}
	if err := s.cashAdvanceRepo.UpdateRequestStatus(ctx, adv.ID, adv.Status); err != nil {
		return cashadvance.CashAdvanceResponse{}, err
	}
	return cashadvance.ToResponse(adv, nil), nil
}

// DisburseCashAdvance records that the approved amount was handed over. Only
// from then on do the installments become recoverable by payroll cycles.
func (s *Service) DisburseCashAdvance(ctx context.Context, id string) (cashadvance.CashAdvanceResponse, error) {
	adv, err := s.cashAdvanceRepo.GetRequestByID(ctx, id)
	if err != nil {
		return cashadvance.CashAdvanceResponse{}, err
	}
	if adv.Status != cashadvance.StatusApproved {
		return cashadvance.CashAdvanceResponse{}, cashadvance.ErrAdvanceNotApproved
	}

	adv.Status = cashadvance.StatusPaidAndClosed
	if err := s.cashAdvanceRepo.UpdateRequestStatus(ctx, adv.ID, adv.Status); err != nil {
		return cashadvance.CashAdvanceResponse{}, err
	}
	return cashadvance.ToResponse(adv, nil), nil
}

func (s *Service) GetCashAdvance(ctx context.Context, id string) (cashadvance.CashAdvanceResponse, error) {
	adv, err := s.cashAdvanceRepo.GetRequestByID(ctx, id)
	if err != nil {
		return cashadvance.CashAdvanceResponse{}, err
	}
	installments, err := s.cashAdvanceRepo.ListInstallmentsByRequest(ctx, adv.ID)
	if err != nil {
		return cashadvance.CashAdvanceResponse{}, err
	}
	return cashadvance.ToResponse(adv, installments), nil
}

func (s *Service) ListCashAdvances(ctx context.Context, employeeID string) ([]cashadvance.CashAdvanceResponse, error) {
	list, err := s.cashAdvanceRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]cashadvance.CashAdvanceResponse, 0, len(list))
	for _, adv := range list {
		resp = append(resp, cashadvance.ToResponse(adv, nil))
	}
	return resp, nil
}
