package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/hrms-lite-api/internal/domain"
	"github.com/hrms-lite-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	responder
	mux        *http.ServeMux
	logger     *slog.Logger
	empHandler *EmployeeHandler
	attHandler *AttendanceHandler
}

// NewRouter создаёт новый роутер
func NewRouter(empHandler *EmployeeHandler, attHandler *AttendanceHandler, logger *slog.Logger) *Router {
	return &Router{
		responder:  responder{logger: logger},
		mux:        http.NewServeMux(),
		logger:     logger,
		empHandler: empHandler,
		attHandler: attHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	// Регистрируем обработчики; завершающий слэш необязателен
	r.mux.HandleFunc("/employees", r.employeesRouter)
	r.mux.HandleFunc("/employees/", r.employeesRouter)
	r.mux.HandleFunc("/attendance", r.attendanceRouter)
	r.mux.HandleFunc("/attendance/", r.attendanceRouter)

	// Health check
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		r.respondServiceError(w, req, domain.ErrRouteNotFound)
	})

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

// employeesRouter обрабатывает все запросы к /employees/
func (r *Router) employeesRouter(w http.ResponseWriter, req *http.Request) {
	parts := pathParts(req.URL.Path, "/employees")

	// /employees/
	if len(parts) == 0 {
		switch req.Method {
		case http.MethodGet:
			r.empHandler.List(w, req)
		case http.MethodPost:
			r.empHandler.Create(w, req)
		default:
			r.methodNotAllowed(w, req)
		}
		return
	}

	// /employees/{id}/
	if len(parts) == 1 {
		id, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil || id < 1 {
			r.respondServiceError(w, req, domain.ErrEmployeeNotFound)
			return
		}

		switch req.Method {
		case http.MethodGet:
			r.empHandler.GetByID(w, req, id)
		case http.MethodPut, http.MethodPatch:
			r.empHandler.Update(w, req, id)
		case http.MethodDelete:
			r.empHandler.Delete(w, req, id)
		default:
			r.methodNotAllowed(w, req)
		}
		return
	}

	r.respondServiceError(w, req, domain.ErrRouteNotFound)
}

// attendanceRouter обрабатывает все запросы к /attendance/
func (r *Router) attendanceRouter(w http.ResponseWriter, req *http.Request) {
	parts := pathParts(req.URL.Path, "/attendance")

	// POST /attendance/ - отметка посещаемости
	if len(parts) == 0 {
		if req.Method == http.MethodPost {
			r.attHandler.Mark(w, req)
			return
		}
		r.methodNotAllowed(w, req)
		return
	}

	// /attendance/employee/{employee_id}/
	if len(parts) == 2 && parts[0] == "employee" {
		if req.Method == http.MethodGet {
			r.attHandler.ListForEmployee(w, req, parts[1])
			return
		}
		r.methodNotAllowed(w, req)
		return
	}

	r.respondServiceError(w, req, domain.ErrRouteNotFound)
}

func (r *Router) methodNotAllowed(w http.ResponseWriter, req *http.Request) {
	r.respondServiceError(w, req, domain.NewMethodNotAllowed(req.Method))
}

// pathParts возвращает сегменты пути после префикса без пустых краёв
func pathParts(path, prefix string) []string {
	path = strings.TrimPrefix(path, prefix)
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
