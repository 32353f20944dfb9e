package handler

import (
	"log/slog"
	"net/http"

	"github.com/hrms-lite-api/internal/domain"
	"github.com/hrms-lite-api/internal/dto"
	"github.com/hrms-lite-api/internal/pagination"
	"github.com/hrms-lite-api/internal/service"
	"github.com/hrms-lite-api/internal/validation"
)

type EmployeeHandler struct {
	responder
	empService service.EmployeeService
}

func NewEmployeeHandler(empService service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		responder:  responder{logger: logger},
		empService: empService,
	}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	emp, err := h.empService.Create(r.Context(), toEmployeeInput(body))
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.Parse(r)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	page, err := h.empService.List(r.Context(), params)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	results := make([]dto.EmployeeResponse, len(page.Employees))
	for i := range page.Employees {
		results[i] = toEmployeeResponse(&page.Employees[i])
	}

	h.respondJSON(w, http.StatusOK, pagination.NewPage(r, page.Params, page.Total, results))
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request, id int64) {
	emp, err := h.empService.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

// Update обрабатывает PUT (все поля обязательны) и PATCH (частичное изменение).
// employee_id в теле игнорируется.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request, id int64) {
	body, err := readBody(r)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	partial := r.Method == http.MethodPatch
	emp, err := h.empService.Update(r.Context(), id, toEmployeeInput(body), partial)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.empService.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toEmployeeInput(body *requestBody) validation.EmployeeInput {
	return validation.EmployeeInput{
		EmployeeID:   body.String("employee_id"),
		FullName:     body.String("full_name"),
		Email:        body.String("email"),
		Department:   body.String("department"),
		DecodeErrors: body.Errors(),
	}
}

func toEmployeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:         emp.ID,
		EmployeeID: emp.EmployeeID,
		FullName:   emp.FullName,
		Email:      emp.Email,
		Department: emp.Department,
		CreatedAt:  emp.CreatedAt,
	}
}
