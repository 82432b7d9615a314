package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/notelog/backend/internal/model"
	"github.com/notelog/backend/internal/service"
)

// ResourceService - service.Resource[T, C, U]가 만족하는 소유 리소스 CRUD
type ResourceService[T, C, U any] interface {
	List(ctx context.Context, principal model.Principal) ([]T, error)
	Create(ctx context.Context, principal model.Principal, req C) (*T, error)
	Update(ctx context.Context, principal model.Principal, id uuid.UUID, req U) (*T, error)
	Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error
}

// ResourceHandler - /api/{notes,todos,contacts,custom-notes} 공통 핸들러.
// 라우트와 godoc은 리소스별 핸들러(NoteHandler 등)가 건다.
// name은 응답 메시지에 쓰인다 ("Todo not found").
type ResourceHandler[T, C, U any] struct {
	name string
	svc  ResourceService[T, C, U]
	log  *slog.Logger
}

func NewResourceHandler[T, C, U any](name string, svc ResourceService[T, C, U], log *slog.Logger) *ResourceHandler[T, C, U] {
	return &ResourceHandler[T, C, U]{name: name, svc: svc, log: log}
}

func (h *ResourceHandler[T, C, U]) List(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		abortWithMessage(c, http.StatusUnauthorized, msgNoToken)
		return
	}

	list, err := h.svc.List(c.Request.Context(), principal)
	if err != nil {
		writeError(c, h.log, h.op("List"), err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ResourceHandler[T, C, U]) Create(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		abortWithMessage(c, http.StatusUnauthorized, msgNoToken)
		return
	}

	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, "invalid input")
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), principal, req)
	if err != nil {
		writeError(c, h.log, h.op("Create"), err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *ResourceHandler[T, C, U]) Update(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		abortWithMessage(c, http.StatusUnauthorized, msgNoToken)
		return
	}

	// 형식이 잘못된 id도 존재하지 않는 id와 구분하지 않는다
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithMessage(c, http.StatusNotFound, h.notFound())
		return
	}

	var req U
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, "invalid input")
		return
	}

	rec, err := h.svc.Update(c.Request.Context(), principal, id, req)
	if err != nil {
		h.writeError(c, "Update", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ResourceHandler[T, C, U]) Delete(c *gin.Context) {
	principal, ok := GetPrincipal(c)
	if !ok {
		abortWithMessage(c, http.StatusUnauthorized, msgNoToken)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithMessage(c, http.StatusNotFound, h.notFound())
		return
	}

	if err := h.svc.Delete(c.Request.Context(), principal, id); err != nil {
		h.writeError(c, "Delete", err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: h.name + " deleted successfully"})
}

func (h *ResourceHandler[T, C, U]) writeError(c *gin.Context, action string, err error) {
	if errors.Is(err, service.ErrNotFound) {
		abortWithMessage(c, http.StatusNotFound, h.notFound())
		return
	}
	writeError(c, h.log, h.op(action), err)
}

func (h *ResourceHandler[T, C, U]) notFound() string {
	return h.name + " not found"
}

func (h *ResourceHandler[T, C, U]) op(action string) string {
	return "handler." + strings.ReplaceAll(h.name, " ", "") + "." + action
}
