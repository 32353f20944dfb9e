// Package validation содержит чистые шаги проверки и нормализации полей.
// Каждый шаг принимает сырое значение (nil - поле не передано) и возвращает
// нормализованное значение и список сообщений об ошибках. Проверки
// уникальности получают доступ к хранилищу только через переданные интерфейсы.
package validation

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hrms-lite-api/internal/domain"
)

// Ограничения длины полей сотрудника
const (
	MaxEmployeeIDLength = 50
	MaxFullNameLength   = 255
	MaxEmailLength      = 254
	MaxDepartmentLength = 255
)

// DateLayout - единственный принимаемый формат даты
const DateLayout = "2006-01-02"

var validate = validator.New(validator.WithRequiredStructEnabled())

// EmployeeLookup предоставляет проверки уникальности сотрудников
type EmployeeLookup interface {
	ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID *int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *int64) (bool, error)
}

// AttendanceLookup предоставляет проверку уникальности отметки за день
type AttendanceLookup interface {
	ExistsForEmployeeOnDate(ctx context.Context, employeeID int64, date time.Time, excludeID *int64) (bool, error)
}

// requiredText проверяет обязательное текстовое поле и обрезает пробелы
func requiredText(raw *string, blankMsg string, maxLen int) (string, []string) {
	if raw == nil {
		return "", []string{domain.MsgRequired}
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return "", []string{blankMsg}
	}
	if validate.Var(value, "max="+strconv.Itoa(maxLen)) != nil {
		return value, []string{domain.MsgTooLong(maxLen)}
	}
	return value, nil
}

// EmployeeID проверяет табельный номер: обязателен, обрезается, уникален
func EmployeeID(ctx context.Context, raw *string, lookup EmployeeLookup, excludeID *int64) (string, []string, error) {
	value, msgs := requiredText(raw, domain.MsgEmployeeIDBlank, MaxEmployeeIDLength)
	if len(msgs) > 0 {
		return value, msgs, nil
	}

	taken, err := lookup.ExistsByEmployeeID(ctx, value, excludeID)
	if err != nil {
		return value, nil, err
	}
	if taken {
		return value, []string{domain.MsgEmployeeIDTaken}, nil
	}
	return value, nil, nil
}

// FullName проверяет полное имя
func FullName(raw *string) (string, []string) {
	return requiredText(raw, domain.MsgFullNameBlank, MaxFullNameLength)
}

// Department проверяет название отдела
func Department(raw *string) (string, []string) {
	return requiredText(raw, domain.MsgDepartmentBlank, MaxDepartmentLength)
}

// Email проверяет адрес почты: приводится к нижнему регистру,
// уникальность проверяется без учёта регистра
func Email(ctx context.Context, raw *string, lookup EmployeeLookup, excludeID *int64) (string, []string, error) {
	value, msgs := requiredText(raw, domain.MsgEmailBlank, MaxEmailLength)
	if len(msgs) > 0 {
		return value, msgs, nil
	}
	value = strings.ToLower(value)

	if validate.Var(value, "email") != nil {
		return value, []string{domain.MsgEmailInvalid}, nil
	}

	taken, err := lookup.ExistsByEmail(ctx, value, excludeID)
	if err != nil {
		return value, nil, err
	}
	if taken {
		return value, []string{domain.MsgEmailTaken}, nil
	}
	return value, nil, nil
}

// Date разбирает календарную дату в формате YYYY-MM-DD
func Date(raw *string) (time.Time, []string) {
	if raw == nil {
		return time.Time{}, []string{domain.MsgDateRequired}
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return time.Time{}, []string{domain.MsgDateRequired}
	}
	if validate.Var(value, "datetime="+DateLayout) != nil {
		return time.Time{}, []string{domain.MsgDateInvalid}
	}
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, []string{domain.MsgDateInvalid}
	}
	return date, nil
}

// Status проверяет статус посещаемости без учёта регистра
func Status(raw *string) (domain.AttendanceStatus, []string) {
	if raw == nil {
		return "", []string{domain.MsgRequired}
	}
	value := strings.ToLower(strings.TrimSpace(*raw))
	if value == "" {
		return "", []string{domain.MsgStatusBlank}
	}
	for _, s := range domain.AttendanceStatuses {
		if value == string(s) {
			return s, nil
		}
	}
	return "", []string{domain.MsgStatusInvalid()}
}

// EmployeeRef разбирает ссылку на сотрудника по первичному ключу
func EmployeeRef(raw *json.Number) (int64, []string) {
	if raw == nil {
		return 0, []string{domain.MsgRequired}
	}
	id, err := raw.Int64()
	if err != nil || id < 1 {
		return 0, []string{domain.MsgEmployeeRefInvalid}
	}
	return id, nil
}

// AttendanceUnique проверяет, что у сотрудника ещё нет отметки за эту дату.
// excludeID исключает редактируемую запись.
func AttendanceUnique(ctx context.Context, employeeID int64, date time.Time, lookup AttendanceLookup, excludeID *int64) ([]string, error) {
	exists, err := lookup.ExistsForEmployeeOnDate(ctx, employeeID, date, excludeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return []string{domain.MsgDuplicateAttendance}, nil
	}
	return nil, nil
}
