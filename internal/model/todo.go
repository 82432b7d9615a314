package model

import "time"

type Todo struct {
	Meta
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	IsCompleted  bool       `json:"isCompleted"`
	ReminderDate *time.Time `json:"reminderDate"`
}

type CreateTodoRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ReminderDate *time.Time `json:"reminderDate"`
}

// UpdateTodoRequest - 부분 수정. nil 필드는 기존 값을 유지한다.
type UpdateTodoRequest struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	IsCompleted  *bool      `json:"isCompleted,omitempty"`
	ReminderDate *time.Time `json:"reminderDate,omitempty"`
}
