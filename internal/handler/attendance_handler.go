package handler

import (
	"log/slog"
	"net/http"

	"github.com/hrms-lite-api/internal/domain"
	"github.com/hrms-lite-api/internal/dto"
	"github.com/hrms-lite-api/internal/service"
	"github.com/hrms-lite-api/internal/validation"
)

type AttendanceHandler struct {
	responder
	attService service.AttendanceService
}

func NewAttendanceHandler(attService service.AttendanceService, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		responder:  responder{logger: logger},
		attService: attService,
	}
}

func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	rec, err := h.attService.Mark(r.Context(), service.MarkAttendanceInput{
		Employee:     body.PrimaryKey("employee"),
		Date:         body.String("date"),
		Status:       body.String("status"),
		DecodeErrors: body.Errors(),
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toAttendanceResponse(rec))
}

func (h *AttendanceHandler) ListForEmployee(w http.ResponseWriter, r *http.Request, employeeID string) {
	records, err := h.attService.ListForEmployee(r.Context(), employeeID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	items := make([]dto.AttendanceListItem, len(records))
	for i := range records {
		items[i] = toAttendanceListItem(&records[i])
	}

	h.respondJSON(w, http.StatusOK, items)
}

func toAttendanceResponse(rec *domain.Attendance) dto.AttendanceResponse {
	return dto.AttendanceResponse{
		ID:        rec.ID,
		Employee:  rec.EmployeeID,
		Date:      rec.Day().Format(validation.DateLayout),
		Status:    string(rec.Status),
		CreatedAt: rec.CreatedAt,
	}
}

func toAttendanceListItem(rec *domain.Attendance) dto.AttendanceListItem {
	item := dto.AttendanceListItem{
		ID:        rec.ID,
		Employee:  dto.EmployeeSummary{ID: rec.EmployeeID},
		Date:      rec.Day().Format(validation.DateLayout),
		Status:    string(rec.Status),
		CreatedAt: rec.CreatedAt,
	}
	if rec.Employee != nil {
		item.Employee.EmployeeID = rec.Employee.EmployeeID
		item.Employee.FullName = rec.Employee.FullName
	}
	return item
}
