package service

import (
	"context"

	"github.com/hrms-lite-api/internal/domain"
	"github.com/hrms-lite-api/internal/pagination"
	"github.com/hrms-lite-api/internal/repository"
	"github.com/hrms-lite-api/internal/validation"
)

// EmployeePage - страница списка сотрудников
type EmployeePage struct {
	Employees []domain.Employee
	Params    pagination.Params
	Total     int64
}

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Create(ctx context.Context, in validation.EmployeeInput) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context, params pagination.Params) (*EmployeePage, error)
	Update(ctx context.Context, id int64, in validation.EmployeeInput, partial bool) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type employeeService struct {
	empRepo repository.EmployeeRepository
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(empRepo repository.EmployeeRepository) EmployeeService {
	return &employeeService{empRepo: empRepo}
}

func (s *employeeService) Create(ctx context.Context, in validation.EmployeeInput) (*domain.Employee, error) {
	emp, err := validation.NewEmployee(ctx, in, s.empRepo)
	if err != nil {
		return nil, err
	}

	if err := s.empRepo.Create(ctx, emp); err != nil {
		return nil, err
	}

	return emp, nil
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.empRepo.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context, params pagination.Params) (*EmployeePage, error) {
	total, err := s.empRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	params, err = params.Resolve(total)
	if err != nil {
		return nil, err
	}

	employees, err := s.empRepo.List(ctx, params.Offset(), params.Limit())
	if err != nil {
		return nil, err
	}

	return &EmployeePage{Employees: employees, Params: params, Total: total}, nil
}

func (s *employeeService) Update(ctx context.Context, id int64, in validation.EmployeeInput, partial bool) (*domain.Employee, error) {
	emp, err := s.empRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// employee_id неизменяем: ApplyEmployeeChanges его не трогает
	if err := validation.ApplyEmployeeChanges(ctx, emp, in, partial, s.empRepo); err != nil {
		return nil, err
	}

	if err := s.empRepo.Update(ctx, emp); err != nil {
		return nil, err
	}

	return emp, nil
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	return s.empRepo.Delete(ctx, id)
}
