package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/notelog/backend/internal/model"
	"github.com/notelog/backend/internal/service"
)

type CustomNoteHandler struct {
	*ResourceHandler[model.CustomNote, model.CreateCustomNoteRequest, model.UpdateCustomNoteRequest]
}

func NewCustomNoteHandler(svc *service.CustomNoteService, log *slog.Logger) CustomNoteHandler {
	return CustomNoteHandler{NewResourceHandler[model.CustomNote, model.CreateCustomNoteRequest, model.UpdateCustomNoteRequest]("Custom note", svc, log)}
}

func (h CustomNoteHandler) Register(group *gin.RouterGroup) {
	group.GET("", h.ListCustomNotes)
	group.POST("", h.CreateCustomNote)
	group.PUT("/:id", h.UpdateCustomNote)
	group.DELETE("/:id", h.DeleteCustomNote)
}

// ListCustomNotes godoc
// @Summary List custom notes
// @Tags custom-notes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CustomNote
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/custom-notes [get]
func (h CustomNoteHandler) ListCustomNotes(c *gin.Context) { h.List(c) }

// CreateCustomNote godoc
// @Summary Create CustomNote
// @Tags custom-notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateCustomNoteRequest true "CustomNote"
// @Success 201 {object} model.CustomNote
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/custom-notes [post]
func (h CustomNoteHandler) CreateCustomNote(c *gin.Context) { h.Create(c) }

// UpdateCustomNote godoc
// @Summary Update CustomNote
// @Tags custom-notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID" format(uuid)
// @Param request body model.UpdateCustomNoteRequest true "CustomNote"
// @Success 200 {object} model.CustomNote
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/custom-notes/{id} [put]
func (h CustomNoteHandler) UpdateCustomNote(c *gin.Context) { h.Update(c) }

// DeleteCustomNote godoc
// @Summary Delete CustomNote
// @Tags custom-notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID" format(uuid)
// @Success 200 {object} model.MessageResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/custom-notes/{id} [delete]
func (h CustomNoteHandler) DeleteCustomNote(c *gin.Context) { h.Delete(c) }
