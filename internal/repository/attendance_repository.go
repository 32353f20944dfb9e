package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hrms-lite-api/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttendanceRepository определяет интерфейс для работы с отметками посещаемости
type AttendanceRepository interface {
	Create(ctx context.Context, rec *domain.Attendance) error
	ListByEmployee(ctx context.Context, employeeID int64) ([]domain.Attendance, error)
	ExistsForEmployeeOnDate(ctx context.Context, employeeID int64, date time.Time, excludeID *int64) (bool, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository создаёт новый экземпляр репозитория
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, rec *domain.Attendance) error {
	return translateError(r.db.WithContext(ctx).Create(rec).Error)
}

// ListByEmployee возвращает отметки сотрудника от новых к старым
// с краткими данными сотрудника
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]domain.Attendance, error) {
	records := make([]domain.Attendance, 0)
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Find(&records).Error
	if err != nil || len(records) == 0 {
		return records, err
	}

	var summary domain.Employee
	err = r.db.WithContext(ctx).
		Select("id", "employee_id", "full_name").
		First(&summary, employeeID).Error
	if err != nil {
		// сотрудник удалён между двумя запросами
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}

	for i := range records {
		records[i].Employee = &summary
	}
	return records, nil
}

func (r *attendanceRepository) ExistsForEmployeeOnDate(ctx context.Context, employeeID int64, date time.Time, excludeID *int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&domain.Attendance{}).
		Where("employee_id = ? AND date = ?", employeeID, datatypes.Date(date))

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	err := query.Count(&count).Error
	return count > 0, err
}
