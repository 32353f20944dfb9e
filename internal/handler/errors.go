package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hrms-lite-api/internal/domain"
	"github.com/hrms-lite-api/internal/dto"
	"github.com/hrms-lite-api/internal/middleware"
)

const (
	msgValidationFailed = "Validation failed."
	msgUnexpected       = "An unexpected error occurred."
	msgRequestFailed    = "Request failed."
)

// normalizeError приводит любую ошибку к HTTP-статусу и единому телу
// {"message", "errors"}. Непредусмотренные ошибки получают общий ответ 500.
func normalizeError(err error) (int, dto.ErrorResponse) {
	var validationErr *domain.ValidationError
	var notFoundErr *domain.NotFoundError
	var requestErr *domain.RequestError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, dto.ErrorResponse{
			Message: msgValidationFailed,
			Errors:  domain.CoerceDetail(validationErr.Fields),
		}
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, singleMessage(notFoundErr.Detail)
	case errors.As(err, &requestErr):
		return requestErr.Status, singleMessage(requestErr.Detail)
	default:
		return http.StatusInternalServerError, unexpectedResponse()
	}
}

func singleMessage(detail any) dto.ErrorResponse {
	message := domain.CoerceDetail(detail).Primary()
	if message == "" {
		message = msgRequestFailed
	}
	return dto.ErrorResponse{Message: message, Errors: map[string][]string{}}
}

func unexpectedResponse() dto.ErrorResponse {
	return dto.ErrorResponse{Message: msgUnexpected, Errors: map[string][]string{}}
}

// responder содержит общие для хендлеров методы формирования ответа
type responder struct {
	logger *slog.Logger
}

func (h *responder) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// respondServiceError нормализует ошибку; причина непредвиденной ошибки
// попадает только в лог
func (h *responder) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := normalizeError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("internal error",
			slog.Any("error", err),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}
	h.respondJSON(w, status, body)
}
