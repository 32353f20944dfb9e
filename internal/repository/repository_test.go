package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hrms-lite-api/internal/config"
	"github.com/hrms-lite-api/internal/database"
	"github.com/hrms-lite-api/internal/domain"
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

func day(s string) datatypes.Date {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return datatypes.Date(d)
}

func countAttendance(t *testing.T, db *gorm.DB, employeeID int64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&domain.Attendance{}).Where("employee_id = ?", employeeID).Count(&n).Error)
	return n
}

func createEmployee(t *testing.T, repo EmployeeRepository, employeeID, email string) *domain.Employee {
	t.Helper()
	emp := &domain.Employee{
		EmployeeID: employeeID,
		FullName:   "Employee " + employeeID,
		Email:      email,
		Department: "Engineering",
	}
	require.NoError(t, repo.Create(context.Background(), emp))
	return emp
}

func requireFieldError(t *testing.T, err error, field, message string) {
	t.Helper()
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{message}, validationErr.Fields[field])
}

func TestEmployeeRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(setupTestDB(t))

	emp := createEmployee(t, repo, "E001", "alice@example.com")
	assert.NotZero(t, emp.ID)
	assert.False(t, emp.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "E001", got.EmployeeID)

	got, err = repo.GetByEmployeeID(ctx, "E001")
	require.NoError(t, err)
	assert.Equal(t, emp.ID, got.ID)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	_, err = repo.GetByEmployeeID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestEmployeeRepository_DuplicateEmployeeIDFromStorage(t *testing.T) {
	repo := NewEmployeeRepository(setupTestDB(t))
	createEmployee(t, repo, "E001", "a@example.com")

	err := repo.Create(context.Background(), &domain.Employee{
		EmployeeID: "E001",
		FullName:   "Other",
		Email:      "b@example.com",
		Department: "Ops",
	})
	requireFieldError(t, err, "employee_id", domain.MsgEmployeeIDTaken)
}

func TestEmployeeRepository_DuplicateEmailIgnoresCase(t *testing.T) {
	repo := NewEmployeeRepository(setupTestDB(t))
	createEmployee(t, repo, "E001", "A@x.com")

	err := repo.Create(context.Background(), &domain.Employee{
		EmployeeID: "E002",
		FullName:   "Other",
		Email:      "a@x.com",
		Department: "Ops",
	})
	requireFieldError(t, err, "email", domain.MsgEmailTaken)

	exists, err := repo.ExistsByEmail(context.Background(), "a@X.com", nil)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEmployeeRepository_ExistsExcludesSelf(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(setupTestDB(t))
	emp := createEmployee(t, repo, "E001", "a@example.com")

	exists, err := repo.ExistsByEmployeeID(ctx, "E001", &emp.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "a@example.com", &emp.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByEmployeeID(ctx, "E001", nil)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEmployeeRepository_ListAndCount(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(setupTestDB(t))
	for _, id := range []string{"E001", "E002", "E003"} {
		createEmployee(t, repo, id, id+"@example.com")
	}

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	page, err := repo.List(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "E002", page[0].EmployeeID)
	assert.Equal(t, "E003", page[1].EmployeeID)
}

func TestEmployeeRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(setupTestDB(t))
	emp := createEmployee(t, repo, "E001", "a@example.com")
	createEmployee(t, repo, "E002", "b@example.com")

	emp.FullName = "Renamed"
	emp.EmployeeID = "HACKED"
	require.NoError(t, repo.Update(ctx, emp))

	got, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.FullName)
	assert.Equal(t, "E001", got.EmployeeID)

	emp.Email = "B@example.com"
	requireFieldError(t, repo.Update(ctx, emp), "email", domain.MsgEmailTaken)

	missing := &domain.Employee{ID: 999, FullName: "x", Email: "x@example.com", Department: "x"}
	assert.ErrorIs(t, repo.Update(ctx, missing), domain.ErrEmployeeNotFound)
}

func TestEmployeeRepository_DeleteCascadesAttendance(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	empRepo := NewEmployeeRepository(db)
	attRepo := NewAttendanceRepository(db)

	emp := createEmployee(t, empRepo, "E001", "a@example.com")
	other := createEmployee(t, empRepo, "E002", "b@example.com")
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		require.NoError(t, attRepo.Create(ctx, &domain.Attendance{EmployeeID: emp.ID, Date: day(d), Status: domain.StatusPresent}))
	}
	require.NoError(t, attRepo.Create(ctx, &domain.Attendance{EmployeeID: other.ID, Date: day("2024-01-01"), Status: domain.StatusAbsent}))

	require.Equal(t, int64(3), countAttendance(t, db, emp.ID))

	require.NoError(t, empRepo.Delete(ctx, emp.ID))

	assert.Zero(t, countAttendance(t, db, emp.ID))
	assert.Equal(t, int64(1), countAttendance(t, db, other.ID))

	assert.ErrorIs(t, empRepo.Delete(ctx, emp.ID), domain.ErrEmployeeNotFound)
}

func TestAttendanceRepository_DuplicateFromStorage(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	emp := createEmployee(t, NewEmployeeRepository(db), "E001", "a@example.com")
	repo := NewAttendanceRepository(db)

	require.NoError(t, repo.Create(ctx, &domain.Attendance{EmployeeID: emp.ID, Date: day("2024-01-15"), Status: domain.StatusPresent}))

	err := repo.Create(ctx, &domain.Attendance{EmployeeID: emp.ID, Date: day("2024-01-15"), Status: domain.StatusAbsent})
	requireFieldError(t, err, domain.NonFieldErrors, domain.MsgDuplicateAttendance)

	require.NoError(t, repo.Create(ctx, &domain.Attendance{EmployeeID: emp.ID, Date: day("2024-01-16"), Status: domain.StatusAbsent}))
}

func TestAttendanceRepository_UnknownEmployee(t *testing.T) {
	repo := NewAttendanceRepository(setupTestDB(t))

	err := repo.Create(context.Background(), &domain.Attendance{EmployeeID: 42, Date: day("2024-01-15"), Status: domain.StatusPresent})
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestAttendanceRepository_ListByEmployee(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	emp := createEmployee(t, NewEmployeeRepository(db), "E123", "a@example.com")
	repo := NewAttendanceRepository(db)

	for _, d := range []string{"2024-01-02", "2024-01-05", "2024-01-01"} {
		require.NoError(t, repo.Create(ctx, &domain.Attendance{EmployeeID: emp.ID, Date: day(d), Status: domain.StatusPresent}))
	}

	records, err := repo.ListByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, records, 3)

	var dates []string
	for _, rec := range records {
		dates = append(dates, rec.Day().Format("2006-01-02"))
		require.NotNil(t, rec.Employee)
		assert.Equal(t, emp.ID, rec.Employee.ID)
		assert.Equal(t, "E123", rec.Employee.EmployeeID)
		assert.Equal(t, emp.FullName, rec.Employee.FullName)
		assert.Empty(t, rec.Employee.Email)
		assert.Empty(t, rec.Employee.Department)
	}
	assert.Equal(t, []string{"2024-01-05", "2024-01-02", "2024-01-01"}, dates)

	empty, err := repo.ListByEmployee(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAttendanceRepository_ExistsForEmployeeOnDate(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	emp := createEmployee(t, NewEmployeeRepository(db), "E001", "a@example.com")
	repo := NewAttendanceRepository(db)

	rec := &domain.Attendance{EmployeeID: emp.ID, Date: day("2024-01-15"), Status: domain.StatusPresent}
	require.NoError(t, repo.Create(ctx, rec))

	date := time.Time(day("2024-01-15"))
	exists, err := repo.ExistsForEmployeeOnDate(ctx, emp.ID, date, nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForEmployeeOnDate(ctx, emp.ID, date, &rec.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsForEmployeeOnDate(ctx, emp.ID, date.AddDate(0, 0, 1), nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAttendanceRepository_ListByEmployee_EmployeeGone(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	emp := createEmployee(t, NewEmployeeRepository(db), "E123", "a@example.com")
	repo := NewAttendanceRepository(db)
	require.NoError(t, repo.Create(ctx, &domain.Attendance{EmployeeID: emp.ID, Date: day("2024-01-15"), Status: domain.StatusPresent}))

	// отметки остаются без сотрудника только при выключенных внешних ключах
	require.NoError(t, db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, db.Exec("DELETE FROM employees WHERE id = ?", emp.ID).Error)

	records, err := repo.ListByEmployee(ctx, emp.ID)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	assert.Nil(t, records)
}
