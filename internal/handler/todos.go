package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/notelog/backend/internal/model"
	"github.com/notelog/backend/internal/service"
)

type TodoHandler struct {
	*ResourceHandler[model.Todo, model.CreateTodoRequest, model.UpdateTodoRequest]
}

func NewTodoHandler(svc *service.TodoService, log *slog.Logger) TodoHandler {
	return TodoHandler{NewResourceHandler[model.Todo, model.CreateTodoRequest, model.UpdateTodoRequest]("Todo", svc, log)}
}

func (h TodoHandler) Register(group *gin.RouterGroup) {
	group.GET("", h.ListTodos)
	group.POST("", h.CreateTodo)
	group.PUT("/:id", h.UpdateTodo)
	group.DELETE("/:id", h.DeleteTodo)
}

// ListTodos godoc
// @Summary List todos
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Todo
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/todos [get]
func (h TodoHandler) ListTodos(c *gin.Context) { h.List(c) }

// CreateTodo godoc
// @Summary Create Todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateTodoRequest true "Todo"
// @Success 201 {object} model.Todo
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/todos [post]
func (h TodoHandler) CreateTodo(c *gin.Context) { h.Create(c) }

// UpdateTodo godoc
// @Summary Update Todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID" format(uuid)
// @Param request body model.UpdateTodoRequest true "Todo"
// @Success 200 {object} model.Todo
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/todos/{id} [put]
func (h TodoHandler) UpdateTodo(c *gin.Context) { h.Update(c) }

// DeleteTodo godoc
// @Summary Delete Todo
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID" format(uuid)
// @Success 200 {object} model.MessageResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/todos/{id} [delete]
func (h TodoHandler) DeleteTodo(c *gin.Context) { h.Delete(c) }
