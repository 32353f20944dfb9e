package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/hrms-lite-api/internal/domain"
	"gorm.io/gorm"
)

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error)
	List(ctx context.Context, offset, limit int) ([]domain.Employee, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID *int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *int64) (bool, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	return translateError(r.db.WithContext(ctx).Create(emp).Error)
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).First(&emp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// List возвращает сотрудников в порядке создания
func (r *employeeRepository) List(ctx context.Context, offset, limit int) ([]domain.Employee, error) {
	employees := make([]domain.Employee, 0, limit)
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Employee{}).Count(&total).Error
	return total, err
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	result := r.db.WithContext(ctx).
		Model(emp).
		Select("full_name", "email", "department", "updated_at").
		Updates(emp)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// Delete удаляет сотрудника вместе со всеми его отметками в одной транзакции.
// Внешний ключ с ON DELETE CASCADE остаётся страховкой на уровне БД.
func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&domain.Attendance{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.Employee{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrEmployeeNotFound
		}
		return nil
	})
}

func (r *employeeRepository) ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID *int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Employee{}).Where("employee_id = ?", employeeID)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	err := query.Count(&count).Error
	return count > 0, err
}

func (r *employeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID *int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Employee{}).Where("LOWER(email) = ?", strings.ToLower(email))

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	err := query.Count(&count).Error
	return count > 0, err
}
