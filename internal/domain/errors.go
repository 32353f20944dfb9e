package domain

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// NonFieldErrors - ключ для ошибок, не относящихся к конкретному полю
const NonFieldErrors = "non_field_errors"

// Сообщения об ошибках, видимые клиенту
const (
	MsgRequired            = "This field is required."
	MsgEmployeeIDBlank     = "Employee ID is required and cannot be blank."
	MsgEmployeeIDTaken     = "An employee with this employee ID already exists."
	MsgFullNameBlank       = "Full name is required and cannot be blank."
	MsgEmailBlank          = "Email is required and cannot be blank."
	MsgEmailInvalid        = "Enter a valid email address."
	MsgEmailTaken          = "An employee with this email already exists."
	MsgDepartmentBlank     = "Department is required and cannot be blank."
	MsgDateRequired        = "Date is required."
	MsgDateInvalid         = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	MsgStatusBlank         = "Status is required and cannot be blank."
	MsgEmployeeRefInvalid  = "Incorrect type. Expected pk value."
	MsgDuplicateAttendance = "Attendance for this employee and date already exists."
	MsgMalformedJSON       = "Malformed JSON request body."
	MsgNotAString          = "Not a valid string."
)

// MsgTooLong формирует сообщение о превышении длины поля
func MsgTooLong(limit int) string {
	return fmt.Sprintf("Ensure this field has no more than %d characters.", limit)
}

// MsgStatusInvalid перечисляет допустимые статусы посещаемости
func MsgStatusInvalid() string {
	names := make([]string, len(AttendanceStatuses))
	for i, s := range AttendanceStatuses {
		names[i] = string(s)
	}
	return "Status must be one of: " + strings.Join(names, ", ") + "."
}

// Определение бизнес-ошибок
var (
	ErrEmployeeNotFound = &NotFoundError{Resource: "employee", Detail: "Employee not found."}
	ErrInvalidPage      = &NotFoundError{Resource: "page", Detail: "Invalid page."}
	ErrRouteNotFound    = &NotFoundError{Resource: "route", Detail: "Not found."}
)

// FieldErrors - ошибки валидации: имя поля -> список сообщений
type FieldErrors map[string][]string

// Add добавляет сообщение к полю
func (f FieldErrors) Add(field string, messages ...string) {
	if len(messages) == 0 {
		return
	}
	f[field] = append(f[field], messages...)
}

// Primary возвращает основное сообщение: сначала detail, затем non_field_errors,
// затем первое по алфавиту поле
func (f FieldErrors) Primary() string {
	for _, key := range []string{"detail", NonFieldErrors} {
		if msgs := f[key]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if len(f[k]) > 0 {
			return f[k][0]
		}
	}
	return ""
}

// ValidationError - ошибка валидации полей запроса, исправимая клиентом
type ValidationError struct {
	Fields FieldErrors
}

// NewValidationError создаёт ошибку валидации для одного поля
func NewValidationError(field string, messages ...string) *ValidationError {
	fields := FieldErrors{}
	fields.Add(field, messages...)
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.Primary()
}

// NotFoundError - запрошенная или указанная сущность отсутствует
type NotFoundError struct {
	Resource string
	Detail   any
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// RequestError - прочие ошибки запроса с явным HTTP-статусом (например, 405)
type RequestError struct {
	Status int
	Detail any
}

// NewMethodNotAllowed создаёт ошибку для неподдерживаемого метода
func NewMethodNotAllowed(method string) *RequestError {
	return &RequestError{
		Status: http.StatusMethodNotAllowed,
		Detail: fmt.Sprintf("Method %q not allowed.", method),
	}
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request error %d: %s", e.Status, CoerceDetail(e.Detail).Primary())
}

// CoerceDetail приводит описание ошибки любой формы (строка, список строк,
// отображение поле -> строка или список) к FieldErrors.
// Немаппинговые значения попадают под non_field_errors.
func CoerceDetail(detail any) FieldErrors {
	result := FieldErrors{}
	switch d := detail.(type) {
	case nil:
	case FieldErrors:
		for k, v := range d {
			result[k] = append([]string(nil), v...)
		}
	case map[string][]string:
		for k, v := range d {
			result[k] = append([]string(nil), v...)
		}
	case map[string]string:
		for k, v := range d {
			result[k] = []string{v}
		}
	case map[string]any:
		for k, v := range d {
			result[k] = coerceList(v)
		}
	case string:
		result[NonFieldErrors] = []string{d}
	case []string:
		result[NonFieldErrors] = append([]string(nil), d...)
	case []any:
		result[NonFieldErrors] = coerceList(d)
	case error:
		result[NonFieldErrors] = []string{d.Error()}
	default:
		result[NonFieldErrors] = []string{fmt.Sprint(d)}
	}
	return result
}

func coerceList(v any) []string {
	switch items := v.(type) {
	case []string:
		return append([]string(nil), items...)
	case []any:
		out := make([]string, len(items))
		for i, item := range items {
			out[i] = fmt.Sprint(item)
		}
		return out
	case string:
		return []string{items}
	default:
		return []string{fmt.Sprint(items)}
	}
}
