package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kantoria/hr-backoffice-go/internal/domain/cashadvance"
	"github.com/kantoria/hr-backoffice-go/internal/domain/holiday"
	"github.com/kantoria/hr-backoffice-go/internal/domain/leave"
	"github.com/kantoria/hr-backoffice-go/internal/domain/schedule"
	"github.com/kantoria/hr-backoffice-go/internal/handler/http/response"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/validator"
	"github.com/kantoria/hr-backoffice-go/internal/service/reference"
)

// ReferenceHandler serves the reference data the engine classifies against:
// working-hour templates, public holidays, leave requests, credit grants and
// cash advances.
type ReferenceHandler interface {
	CreateWorkingHours(w http.ResponseWriter, r *http.Request)
	UpdateWorkingHours(w http.ResponseWriter, r *http.Request)
	GetWorkingHours(w http.ResponseWriter, r *http.Request)
	ListWorkingHours(w http.ResponseWriter, r *http.Request)
	CreateHoliday(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	CreateLeaveRequest(w http.ResponseWriter, r *http.Request)
	DecideLeaveRequest(w http.ResponseWriter, r *http.Request)
	GrantLeaveCredit(w http.ResponseWriter, r *http.Request)
	CreateCashAdvance(w http.ResponseWriter, r *http.Request)
	DecideCashAdvance(w http.ResponseWriter, r *http.Request)
	DisburseCashAdvance(w http.ResponseWriter, r *http.Request)
	GetCashAdvance(w http.ResponseWriter, r *http.Request)
	ListCashAdvances(w http.ResponseWriter, r *http.Request)
}

type referenceHandlerImpl struct {
	referenceService *reference.Service
}

func NewReferenceHandler(referenceService *reference.Service) ReferenceHandler {
	return &referenceHandlerImpl{referenceService: referenceService}
}

func (h *referenceHandlerImpl) CreateWorkingHours(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateWorkingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.referenceService.CreateWorkingHours(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Working hours created", resp)
}

func (h *referenceHandlerImpl) UpdateWorkingHours(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateWorkingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.referenceService.UpdateWorkingHours(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *referenceHandlerImpl) GetWorkingHours(w http.ResponseWriter, r *http.Request) {
	resp, err := h.referenceService.GetWorkingHours(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *referenceHandlerImpl) ListWorkingHours(w http.ResponseWriter, r *http.Request) {
	resp, err := h.referenceService.ListWorkingHours(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *referenceHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.referenceService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Holiday created", resp)
}

func (h *referenceHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.referenceService.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Holiday deleted", nil)
}

func (h *referenceHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	from, okFrom := validator.IsValidDate(r.URL.Query().Get("from"))
	to, okTo := validator.IsValidDate(r.URL.Query().Get("to"))
	if !okFrom || !okTo {
		// Default to the current calendar year.
		now := time.Now().UTC()
		from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		to = time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	}

	resp, err := h.referenceService.ListHolidays(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *referenceHandlerImpl) CreateLeaveRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.referenceService.CreateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", resp)
}

func (h *referenceHandlerImpl) DecideLeaveRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.DecideLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.referenceService.DecideLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *referenceHandlerImpl) GrantLeaveCredit(w http.ResponseWriter, r *http.Request) {
	var req leave.GrantLeaveCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	credit, err := h.referenceService.GrantLeaveCredit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave credit granted", map[string]string{
		"id":   credit.ID,
		"days": credit.Days.String(),
	})
}

func (h *referenceHandlerImpl) CreateCashAdvance(w http.ResponseWriter, r *http.Request) {
	var req cashadvance.CreateCashAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.referenceService.CreateCashAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Cash advance requested", resp)
}

func (h *referenceHandlerImpl) DecideCashAdvance(w http.ResponseWriter, r *http.Request) {
	var req cashadvance.DecideCashAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.referenceService.DecideCashAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *referenceHandlerImpl) DisburseCashAdvance(w http.ResponseWriter, r *http.Request) {
	resp, err := h.referenceService.DisburseCashAdvance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *referenceHandlerImpl) GetCashAdvance(w http.ResponseWriter, r *http.Request) {
	resp, err := h.referenceService.GetCashAdvance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *referenceHandlerImpl) ListCashAdvances(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id query parameter is required", nil)
		return
	}

	resp, err := h.referenceService.ListCashAdvances(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
