package validation

import (
	"context"

	"github.com/hrms-lite-api/internal/domain"
)

// EmployeeInput - сырые поля сотрудника из запроса.
// DecodeErrors содержит ошибки типов JSON по полям: такие поля не проверяются
// дальше, но остальные поля проверяются как обычно.
type EmployeeInput struct {
	EmployeeID   *string
	FullName     *string
	Email        *string
	Department   *string
	DecodeErrors domain.FieldErrors
}

// NewEmployee проверяет все поля нового сотрудника и собирает все ошибки сразу.
// Возвращает *domain.ValidationError либо ошибку обращения к хранилищу.
func NewEmployee(ctx context.Context, in EmployeeInput, lookup EmployeeLookup) (*domain.Employee, error) {
	errs := domain.FieldErrors{}
	emp := &domain.Employee{}

	if !decodeFailed(in.DecodeErrors, "employee_id", errs) {
		employeeID, msgs, err := EmployeeID(ctx, in.EmployeeID, lookup, nil)
		if err != nil {
			return nil, err
		}
		emp.EmployeeID = employeeID
		errs.Add("employee_id", msgs...)
	}

	if !decodeFailed(in.DecodeErrors, "full_name", errs) {
		var msgs []string
		emp.FullName, msgs = FullName(in.FullName)
		errs.Add("full_name", msgs...)
	}

	if !decodeFailed(in.DecodeErrors, "email", errs) {
		email, msgs, err := Email(ctx, in.Email, lookup, nil)
		if err != nil {
			return nil, err
		}
		emp.Email = email
		errs.Add("email", msgs...)
	}

	if !decodeFailed(in.DecodeErrors, "department", errs) {
		var msgs []string
		emp.Department, msgs = Department(in.Department)
		errs.Add("department", msgs...)
	}

	if len(errs) > 0 {
		return nil, &domain.ValidationError{Fields: errs}
	}
	return emp, nil
}

// ApplyEmployeeChanges проверяет изменения и применяет их к current.
// employee_id после создания не меняется и во входных данных игнорируется.
// При partial отсутствующие поля пропускаются, иначе они обязательны.
func ApplyEmployeeChanges(ctx context.Context, current *domain.Employee, in EmployeeInput, partial bool, lookup EmployeeLookup) error {
	errs := domain.FieldErrors{}
	updated := *current
	self := &current.ID

	// поле проверяется, если оно обязательно, передано или не разобралось
	check := func(field string, raw *string) bool {
		if decodeFailed(in.DecodeErrors, field, errs) {
			return false
		}
		return !partial || raw != nil
	}

	if check("full_name", in.FullName) {
		fullName, msgs := FullName(in.FullName)
		updated.FullName = fullName
		errs.Add("full_name", msgs...)
	}

	if check("email", in.Email) {
		email, msgs, err := Email(ctx, in.Email, lookup, self)
		if err != nil {
			return err
		}
		updated.Email = email
		errs.Add("email", msgs...)
	}

	if check("department", in.Department) {
		department, msgs := Department(in.Department)
		updated.Department = department
		errs.Add("department", msgs...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Fields: errs}
	}

	current.FullName = updated.FullName
	current.Email = updated.Email
	current.Department = updated.Department
	return nil
}

// decodeFailed переносит ошибку разбора поля в errs и сообщает, была ли она
func decodeFailed(decodeErrs domain.FieldErrors, field string, errs domain.FieldErrors) bool {
	msgs := decodeErrs[field]
	if len(msgs) == 0 {
		return false
	}
	errs.Add(field, msgs...)
	return true
}
