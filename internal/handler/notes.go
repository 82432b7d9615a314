package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/notelog/backend/internal/model"
	"github.com/notelog/backend/internal/service"
)

type NoteHandler struct {
	*ResourceHandler[model.Note, model.CreateNoteRequest, model.UpdateNoteRequest]
}

func NewNoteHandler(svc *service.NoteService, log *slog.Logger) NoteHandler {
	return NoteHandler{NewResourceHandler[model.Note, model.CreateNoteRequest, model.UpdateNoteRequest]("Note", svc, log)}
}

func (h NoteHandler) Register(group *gin.RouterGroup) {
	group.GET("", h.ListNotes)
	group.POST("", h.CreateNote)
	group.PUT("/:id", h.UpdateNote)
	group.DELETE("/:id", h.DeleteNote)
}

// ListNotes godoc
// @Summary List notes
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Note
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/notes [get]
func (h NoteHandler) ListNotes(c *gin.Context) { h.List(c) }

// CreateNote godoc
// @Summary Create Note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateNoteRequest true "Note"
// @Success 201 {object} model.Note
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/notes [post]
func (h NoteHandler) CreateNote(c *gin.Context) { h.Create(c) }

// UpdateNote godoc
// @Summary Update Note
// @Description Content is required. The title changes only when it is sent.
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID" format(uuid)
// @Param request body model.UpdateNoteRequest true "Note"
// @Success 200 {object} model.Note
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/notes/{id} [put]
func (h NoteHandler) UpdateNote(c *gin.Context) { h.Update(c) }

// DeleteNote godoc
// @Summary Delete Note
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID" format(uuid)
// @Success 200 {object} model.MessageResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/notes/{id} [delete]
func (h NoteHandler) DeleteNote(c *gin.Context) { h.Delete(c) }
