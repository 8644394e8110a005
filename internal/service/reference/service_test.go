package reference

import (
	"context"
	"fmt"
	"testing"

	"github.com/kantoria/hr-backoffice-go/internal/domain/cashadvance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCashAdvanceRepo struct {
	cashadvance.RequestRepository

	requests     map[string]cashadvance.CashAdvanceRequest
	installments map[string][]cashadvance.CashAdvanceInstallment
	nextID       int
}

func newFakeCashAdvanceRepo() *fakeCashAdvanceRepo {
	return &fakeCashAdvanceRepo{
		requests:     make(map[string]cashadvance.CashAdvanceRequest),
		installments: make(map[string][]cashadvance.CashAdvanceInstallment),
	}
}

func (f *fakeCashAdvanceRepo) CreateRequest(ctx context.Context, req cashadvance.CashAdvanceRequest) (cashadvance.CashAdvanceRequest, error) {
	f.nextID++
	req.ID = fmt.Sprintf("adv-%d", f.nextID)
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeCashAdvanceRepo) GetRequestByID(ctx context.Context, id string) (cashadvance.CashAdvanceRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return cashadvance.CashAdvanceRequest{}, cashadvance.ErrAdvanceNotFound
	}
	return req, nil
}

func (f *fakeCashAdvanceRepo) UpdateRequestStatus(ctx context.Context, id string, status cashadvance.RequestStatus) error {
	req, ok := f.requests[id]
	if !ok {
		return cashadvance.ErrAdvanceNotFound
	}
	req.Status = status
	f.requests[id] = req
	return nil
}

func (f *fakeCashAdvanceRepo) CreateInstallments(ctx context.Context, installments []cashadvance.CashAdvanceInstallment) error {
	for _, inst := range installments {
		f.installments[inst.CashAdvanceRequestID] = append(f.installments[inst.CashAdvanceRequestID], inst)
	}
	return nil
}

func (f *fakeCashAdvanceRepo) ListInstallmentsByRequest(ctx context.Context, requestID string) ([]cashadvance.CashAdvanceInstallment, error) {
	return f.installments[requestID], nil
}

func newCashAdvanceService(repo *fakeCashAdvanceRepo) *Service {
	return NewService(fakeTxManager{}, nil, nil, nil, nil, repo)
}

func TestCreateCashAdvance_LastInstallmentAbsorbsRemainder(t *testing.T) {
	t.Parallel()

	repo := newFakeCashAdvanceRepo()
	s := newCashAdvanceService(repo)

	resp, err := s.CreateCashAdvance(context.Background(), cashadvance.CreateCashAdvanceRequest{
		EmployeeID: "emp-1",
		Amount:     decimal.NewFromInt(1000),
		Months:     3,
		FirstMonth: "2025-02",
	})
	require.NoError(t, err)

	assert.Equal(t, cashadvance.StatusPending, resp.Status)
	require.Len(t, resp.Installments, 3)
	assert.Equal(t, "2025-02", resp.Installments[0].MonthYear)
	assert.Equal(t, "2025-04", resp.Installments[2].MonthYear)
	assert.True(t, decimal.NewFromFloat(333.33).Equal(resp.Installments[0].InstallmentAmount))
	assert.True(t, decimal.NewFromFloat(333.34).Equal(resp.Installments[2].InstallmentAmount))

	total := decimal.Zero
	for _, inst := range resp.Installments {
		total = total.Add(inst.InstallmentAmount)
	}
	assert.True(t, decimal.NewFromInt(1000).Equal(total))
}

func TestCashAdvance_StatusTransitions(t *testing.T) {
	t.Parallel()

	repo := newFakeCashAdvanceRepo()
	s := newCashAdvanceService(repo)

	created, err := s.CreateCashAdvance(context.Background(), cashadvance.CreateCashAdvanceRequest{
		EmployeeID: "emp-1",
		Amount:     decimal.NewFromInt(600),
		Months:     2,
		FirstMonth: "2025-03",
	})
	require.NoError(t, err)

	// Disbursing before approval is rejected.
	_, err = s.DisburseCashAdvance(context.Background(), created.ID)
	assert.ErrorIs(t, err, cashadvance.ErrAdvanceNotApproved)

	decided, err := s.DecideCashAdvance(context.Background(), cashadvance.DecideCashAdvanceRequest{ID: created.ID, Approve: true})
	require.NoError(t, err)
	assert.Equal(t, cashadvance.StatusApproved, decided.Status)

	_, err = s.DecideCashAdvance(context.Background(), cashadvance.DecideCashAdvanceRequest{ID: created.ID, Approve: false})
	assert.ErrorIs(t, err, cashadvance.ErrAlreadyDecided)

	disbursed, err := s.DisburseCashAdvance(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, cashadvance.StatusPaidAndClosed, disbursed.Status)
}
