package dto

import "time"

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID         int64     `json:"id"`
	EmployeeID string    `json:"employee_id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}

// EmployeeSummary - краткие данные сотрудника внутри отметки
type EmployeeSummary struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
}

// AttendanceResponse - ответ на создание отметки, employee - первичный ключ
type AttendanceResponse struct {
	ID        int64     `json:"id"`
	Employee  int64     `json:"employee"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AttendanceListItem - элемент списка отметок с краткими данными сотрудника
type AttendanceListItem struct {
	ID        int64           `json:"id"`
	Employee  EmployeeSummary `json:"employee"`
	Date      string          `json:"date"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// ErrorResponse - единый формат ответа с ошибкой
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}
