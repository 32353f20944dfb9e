package domain

import (
	"time"

	"gorm.io/datatypes"
)

// AttendanceStatus - статус отметки посещаемости
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

// AttendanceStatuses перечисляет допустимые статусы в порядке вывода в сообщениях
var AttendanceStatuses = []AttendanceStatus{StatusPresent, StatusAbsent}

// Employee представляет сотрудника
type Employee struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID string    `json:"employee_id" gorm:"column:employee_id;type:varchar(50);not null"`
	FullName   string    `json:"full_name" gorm:"type:varchar(255);not null"`
	Email      string    `json:"email" gorm:"type:varchar(254);not null"`
	Department string    `json:"department" gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// Attendance представляет отметку посещаемости сотрудника за один день
type Attendance struct {
	ID         int64            `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID int64            `json:"employee" gorm:"column:employee_id;not null;index"`
	Date       datatypes.Date   `json:"date" gorm:"type:date;not null"`
	Status     AttendanceStatus `json:"status" gorm:"type:varchar(10);not null"`
	CreatedAt  time.Time        `json:"created_at" gorm:"autoCreateTime"`

	// Employee заполняется репозиторием только краткими данными (id, employee_id, full_name)
	Employee *Employee `json:"-" gorm:"-"`
}

// TableName задаёт имя таблицы для GORM
func (Attendance) TableName() string {
	return "attendance"
}

// Day возвращает дату отметки как time.Time в UTC
func (a *Attendance) Day() time.Time {
	y, m, d := time.Time(a.Date).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
