package service

import (
	"context"
	"encoding/json"

	"github.com/hrms-lite-api/internal/domain"
	"github.com/hrms-lite-api/internal/repository"
	"github.com/hrms-lite-api/internal/validation"
)

// MarkAttendanceInput - сырые поля отметки из запроса и ошибки разбора их типов
type MarkAttendanceInput struct {
	Employee     *json.Number
	Date         *string
	Status       *string
	DecodeErrors domain.FieldErrors
}

// AttendanceService определяет интерфейс бизнес-логики для посещаемости
type AttendanceService interface {
	Mark(ctx context.Context, in MarkAttendanceInput) (*domain.Attendance, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]domain.Attendance, error)
}

type attendanceService struct {
	attRepo repository.AttendanceRepository
	empRepo repository.EmployeeRepository
}

// NewAttendanceService создаёт новый экземпляр сервиса
func NewAttendanceService(attRepo repository.AttendanceRepository, empRepo repository.EmployeeRepository) AttendanceService {
	return &attendanceService{
		attRepo: attRepo,
		empRepo: empRepo,
	}
}

// Mark создаёт отметку. Неизвестный сотрудник даёт NotFound ещё до проверки
// остальных полей.
func (s *attendanceService) Mark(ctx context.Context, in MarkAttendanceInput) (*domain.Attendance, error) {
	input := validation.AttendanceInput{Date: in.Date, Status: in.Status, DecodeErrors: in.DecodeErrors}

	employeePK, msgs := validation.EmployeeRef(in.Employee)
	if decodeMsgs := in.DecodeErrors["employee"]; len(decodeMsgs) > 0 {
		input.EmployeeErrors = decodeMsgs
	} else if len(msgs) > 0 {
		input.EmployeeErrors = msgs
	} else {
		emp, err := s.empRepo.GetByID(ctx, employeePK)
		if err != nil {
			return nil, err
		}
		input.Employee = emp
	}

	rec, err := validation.NewAttendance(ctx, input, s.attRepo, nil)
	if err != nil {
		return nil, err
	}

	if err := s.attRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	rec.Employee = input.Employee
	return rec, nil
}

// ListForEmployee возвращает отметки сотрудника по внешнему employee_id
func (s *attendanceService) ListForEmployee(ctx context.Context, employeeID string) ([]domain.Attendance, error) {
	emp, err := s.empRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	return s.attRepo.ListByEmployee(ctx, emp.ID)
}
