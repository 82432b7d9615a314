package service

import "github.com/notelog/backend/internal/model"

type TodoService = Resource[model.Todo, model.CreateTodoRequest, model.UpdateTodoRequest]

func NewTodoService(store OwnedStore[model.Todo]) *TodoService {
	return newResource(store, todoMeta, buildTodo, applyTodo)
}

func todoMeta(t *model.Todo) *model.Meta { return &t.Meta }

func buildTodo(req model.CreateTodoRequest) (model.Todo, error) {
	if blank(req.Title) {
		return model.Todo{}, ErrInvalidInput
	}
	todo := model.Todo{
		Title:        req.Title,
		Description:  req.Description,
		ReminderDate: req.ReminderDate,
	}
	if todo.ReminderDate != nil {
		utc := todo.ReminderDate.UTC()
		todo.ReminderDate = &utc
	}
	return todo, nil
}

func applyTodo(t *model.Todo, req model.UpdateTodoRequest) error {
	if req.Title != nil {
		if blank(*req.Title) {
			return ErrInvalidInput
		}
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.IsCompleted != nil {
		t.IsCompleted = *req.IsCompleted
	}
	if req.ReminderDate != nil {
		utc := req.ReminderDate.UTC()
		t.ReminderDate = &utc
	}
	return nil
}
