package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kantoria/hr-backoffice-go/internal/domain/payroll"
	"github.com/kantoria/hr-backoffice-go/internal/handler/http/response"
)

type PayrollHandler interface {
	CreateCycle(w http.ResponseWriter, r *http.Request)
	GetCycle(w http.ResponseWriter, r *http.Request)
	ListCycles(w http.ResponseWriter, r *http.Request)
	ProcessCycle(w http.ResponseWriter, r *http.Request)
	ListPayrollsByCycle(w http.ResponseWriter, r *http.Request)
	GetPayroll(w http.ResponseWriter, r *http.Request)
	RecalculatePayroll(w http.ResponseWriter, r *http.Request)
	ApplyManualCorrection(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) CreateCycle(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.payrollService.CreateCycle(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payroll cycle created", resp)
}

func (h *payrollHandlerImpl) GetCycle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.GetCycle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *payrollHandlerImpl) ListCycles(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.ListCycles(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *payrollHandlerImpl) ProcessCycle(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.ProcessCycle(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Accepted(w, "Payroll processing started", nil)
}

func (h *payrollHandlerImpl) ListPayrollsByCycle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.ListPayrollsByCycle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *payrollHandlerImpl) GetPayroll(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.GetPayroll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *payrollHandlerImpl) RecalculatePayroll(w http.ResponseWriter, r *http.Request) {
	resp, err := h.payrollService.RecalculatePayroll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *payrollHandlerImpl) ApplyManualCorrection(w http.ResponseWriter, r *http.Request) {
	var req payroll.ManualCorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.PayrollID = chi.URLParam(r, "id")

	resp, err := h.payrollService.ApplyManualCorrection(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.MarkPaid(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll marked as paid", nil)
}
