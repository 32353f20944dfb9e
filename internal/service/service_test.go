package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hrms-lite-api/internal/config"
	"github.com/hrms-lite-api/internal/database"
	"github.com/hrms-lite-api/internal/domain"
	"github.com/hrms-lite-api/internal/pagination"
	"github.com/hrms-lite-api/internal/repository"
	"github.com/hrms-lite-api/internal/validation"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		SQLitePath:      "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		ConnectAttempts: 1,
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	require.NoError(t, database.Migrate(db, cfg.Driver, slog.New(slog.NewTextHandler(io.Discard, nil))))
	return db
}

// blindEmployeeRepo не видит существующих записей, как проигравший гонку запрос
type blindEmployeeRepo struct {
	repository.EmployeeRepository
}

func (blindEmployeeRepo) ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID *int64) (bool, error) {
	return false, nil
}

func (blindEmployeeRepo) ExistsByEmail(ctx context.Context, email string, excludeID *int64) (bool, error) {
	return false, nil
}

type blindAttendanceRepo struct {
	repository.AttendanceRepository
}

func (blindAttendanceRepo) ExistsForEmployeeOnDate(ctx context.Context, employeeID int64, date time.Time, excludeID *int64) (bool, error) {
	return false, nil
}

func ptr[T any](v T) *T { return &v }

func employeeInput(employeeID, email string) validation.EmployeeInput {
	return validation.EmployeeInput{
		EmployeeID: ptr(employeeID),
		FullName:   ptr("Jane Doe"),
		Email:      ptr(email),
		Department: ptr("Engineering"),
	}
}

func markInput(employee int64, date, status string) MarkAttendanceInput {
	n := json.Number(strconv.FormatInt(employee, 10))
	return MarkAttendanceInput{Employee: &n, Date: ptr(date), Status: ptr(status)}
}

func TestEmployeeService_RaceSurfacesSameValidationError(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	checked := NewEmployeeService(repository.NewEmployeeRepository(db))
	racing := NewEmployeeService(blindEmployeeRepo{repository.NewEmployeeRepository(db)})

	_, err := checked.Create(ctx, employeeInput("E001", "a@example.com"))
	require.NoError(t, err)

	for _, in := range []validation.EmployeeInput{
		employeeInput("E001", "b@example.com"),
		employeeInput("E002", "A@EXAMPLE.com"),
	} {
		_, preErr := checked.Create(ctx, in)
		_, raceErr := racing.Create(ctx, in)

		var pre, race *domain.ValidationError
		require.ErrorAs(t, preErr, &pre)
		require.ErrorAs(t, raceErr, &race)
		assert.Equal(t, pre.Fields, race.Fields)
	}
}

func TestAttendanceService_RaceSurfacesSameValidationError(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	empRepo := repository.NewEmployeeRepository(db)
	attRepo := repository.NewAttendanceRepository(db)

	emp, err := NewEmployeeService(empRepo).Create(ctx, employeeInput("E001", "a@example.com"))
	require.NoError(t, err)

	checked := NewAttendanceService(attRepo, empRepo)
	racing := NewAttendanceService(blindAttendanceRepo{attRepo}, empRepo)

	_, err = checked.Mark(ctx, markInput(emp.ID, "2024-01-15", "present"))
	require.NoError(t, err)

	_, preErr := checked.Mark(ctx, markInput(emp.ID, "2024-01-15", "absent"))
	_, raceErr := racing.Mark(ctx, markInput(emp.ID, "2024-01-15", "absent"))

	var pre, race *domain.ValidationError
	require.ErrorAs(t, preErr, &pre)
	require.ErrorAs(t, raceErr, &race)
	assert.Equal(t, pre.Fields, race.Fields)
	assert.Equal(t, []string{domain.MsgDuplicateAttendance}, race.Fields[domain.NonFieldErrors])
}

func TestAttendanceService_Mark(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	empRepo := repository.NewEmployeeRepository(db)
	svc := NewAttendanceService(repository.NewAttendanceRepository(db), empRepo)

	emp, err := NewEmployeeService(empRepo).Create(ctx, employeeInput("E001", "a@example.com"))
	require.NoError(t, err)

	rec, err := svc.Mark(ctx, markInput(emp.ID, "2024-01-15", "PRESENT"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPresent, rec.Status)
	assert.Equal(t, "2024-01-15", rec.Day().Format(validation.DateLayout))
	require.NotNil(t, rec.Employee)
	assert.Equal(t, "E001", rec.Employee.EmployeeID)

	_, err = svc.Mark(ctx, markInput(999, "", ""))
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	records, err := svc.ListForEmployee(ctx, "E001")
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = svc.ListForEmployee(ctx, "E404")
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestEmployeeService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewEmployeeService(repository.NewEmployeeRepository(db))

	for _, id := range []string{"E1", "E2", "E3"} {
		_, err := svc.Create(ctx, employeeInput(id, id+"@example.com"))
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, pagination.Params{Page: 0, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Params.Page)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Employees, 1)
	assert.Equal(t, "E3", page.Employees[0].EmployeeID)

	_, err = svc.List(ctx, pagination.Params{Page: 3, PageSize: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidPage)

	require.NoError(t, svc.Delete(ctx, page.Employees[0].ID))
	assert.ErrorIs(t, svc.Delete(ctx, page.Employees[0].ID), domain.ErrEmployeeNotFound)
}
