package validation

import (
	"context"
	"time"

	"github.com/hrms-lite-api/internal/domain"
	"gorm.io/datatypes"
)

// AttendanceInput - поля отметки посещаемости.
// Employee уже разрешён по первичному ключу; nil, если ссылка не передана или некорректна,
// тогда причина лежит в EmployeeErrors. DecodeErrors - ошибки типов JSON для date и status.
type AttendanceInput struct {
	Employee       *domain.Employee
	EmployeeErrors []string
	Date           *string
	Status         *string
	DecodeErrors   domain.FieldErrors
}

// NewAttendance проверяет поля отметки и затем уникальность пары (сотрудник, дата).
// Перекрёстная проверка выполняется только если сотрудник и дата корректны.
func NewAttendance(ctx context.Context, in AttendanceInput, lookup AttendanceLookup, excludeID *int64) (*domain.Attendance, error) {
	errs := domain.FieldErrors{}
	errs.Add("employee", in.EmployeeErrors...)

	var date time.Time
	dateOK := false
	if !decodeFailed(in.DecodeErrors, "date", errs) {
		var msgs []string
		date, msgs = Date(in.Date)
		errs.Add("date", msgs...)
		dateOK = len(msgs) == 0
	}

	var status domain.AttendanceStatus
	if !decodeFailed(in.DecodeErrors, "status", errs) {
		var msgs []string
		status, msgs = Status(in.Status)
		errs.Add("status", msgs...)
	}

	if in.Employee != nil && dateOK {
		msgs, err := AttendanceUnique(ctx, in.Employee.ID, date, lookup, excludeID)
		if err != nil {
			return nil, err
		}
		errs.Add(domain.NonFieldErrors, msgs...)
	}

	if len(errs) > 0 {
		return nil, &domain.ValidationError{Fields: errs}
	}
	if in.Employee == nil {
		return nil, domain.NewValidationError("employee", domain.MsgRequired)
	}

	return &domain.Attendance{
		EmployeeID: in.Employee.ID,
		Date:       datatypes.Date(date),
		Status:     status,
	}, nil
}
