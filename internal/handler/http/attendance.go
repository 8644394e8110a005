package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kantoria/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantoria/hr-backoffice-go/internal/handler/http/response"
	"github.com/kantoria/hr-backoffice-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	MonthRoster(w http.ResponseWriter, r *http.Request)
	RangeRoster(w http.ResponseWriter, r *http.Request)
	ReconcileDay(w http.ResponseWriter, r *http.Request)
	ReconcileAll(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.attendanceService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Attendance recorded", resp)
}

func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.attendanceService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance deleted", nil)
}

func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.attendanceService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *attendanceHandlerImpl) MonthRoster(w http.ResponseWriter, r *http.Request) {
	year, errYear := strconv.Atoi(r.URL.Query().Get("year"))
	month, errMonth := strconv.Atoi(r.URL.Query().Get("month"))
	if errYear != nil || errMonth != nil {
		response.BadRequest(w, "year and month query parameters are required", nil)
		return
	}

	req := attendance.MonthRosterRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Year:       year,
		Month:      month,
	}
	resp, err := h.attendanceService.MonthRoster(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *attendanceHandlerImpl) RangeRoster(w http.ResponseWriter, r *http.Request) {
	req := attendance.RangeRosterRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		From:       r.URL.Query().Get("from"),
		To:         r.URL.Query().Get("to"),
	}
	resp, err := h.attendanceService.RangeRoster(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *attendanceHandlerImpl) ReconcileDay(w http.ResponseWriter, r *http.Request) {
	var req attendance.ReconcileDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	day, err := req.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}
	resp, err := h.attendanceService.ReconcileDay(r.Context(), req.EmployeeID, day)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *attendanceHandlerImpl) ReconcileAll(w http.ResponseWriter, r *http.Request) {
	day, ok := validator.IsValidDate(r.URL.Query().Get("day"))
	if !ok {
		response.BadRequest(w, "day query parameter must be formatted as 2006-01-02", nil)
		return
	}

	queued, err := h.attendanceService.ReconcileAll(r.Context(), day)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Accepted(w, "Reconciliation started", map[string]int{"employees_queued": queued})
}
