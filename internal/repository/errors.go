package repository

import (
	"errors"
	"strings"

	"github.com/hrms-lite-api/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Коды ошибок PostgreSQL
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError переводит нарушения ограничений БД в доменные ошибки.
// Гонка, проигравшая уникальному индексу, выглядит для клиента так же,
// как и отказ предварительной проверки.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if conflict := conflictFor(pgErr.ConstraintName); conflict != nil {
				return conflict
			}
		case pgForeignKeyViolation:
			return domain.ErrEmployeeNotFound
		}
		return err
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique:
			if conflict := conflictFor(sqliteErr.Error()); conflict != nil {
				return conflict
			}
		case sqlite3.ErrConstraintForeignKey:
			return domain.ErrEmployeeNotFound
		}
	}

	return err
}

// conflictFor определяет нарушенное ограничение по имени индекса
// (uq_attendance_employee_date, uq_employees_email, ...) или списку колонок
func conflictFor(detail string) error {
	switch {
	case strings.Contains(detail, "attendance"):
		return domain.NewValidationError(domain.NonFieldErrors, domain.MsgDuplicateAttendance)
	case strings.Contains(detail, "email"):
		return domain.NewValidationError("email", domain.MsgEmailTaken)
	case strings.Contains(detail, "employee_id"):
		return domain.NewValidationError("employee_id", domain.MsgEmployeeIDTaken)
	}
	return nil
}
