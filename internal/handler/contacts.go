package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/notelog/backend/internal/model"
	"github.com/notelog/backend/internal/service"
)

type ContactHandler struct {
	*ResourceHandler[model.Contact, model.CreateContactRequest, model.UpdateContactRequest]
}

func NewContactHandler(svc *service.ContactService, log *slog.Logger) ContactHandler {
	return ContactHandler{NewResourceHandler[model.Contact, model.CreateContactRequest, model.UpdateContactRequest]("Contact", svc, log)}
}

func (h ContactHandler) Register(group *gin.RouterGroup) {
	group.GET("", h.ListContacts)
	group.POST("", h.CreateContact)
	group.PUT("/:id", h.UpdateContact)
	group.DELETE("/:id", h.DeleteContact)
}

// ListContacts godoc
// @Summary List contacts
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Contact
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/contacts [get]
func (h ContactHandler) ListContacts(c *gin.Context) { h.List(c) }

// CreateContact godoc
// @Summary Create Contact
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateContactRequest true "Contact"
// @Success 201 {object} model.Contact
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/contacts [post]
func (h ContactHandler) CreateContact(c *gin.Context) { h.Create(c) }

// UpdateContact godoc
// @Summary Update Contact
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID" format(uuid)
// @Param request body model.UpdateContactRequest true "Contact"
// @Success 200 {object} model.Contact
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/contacts/{id} [put]
func (h ContactHandler) UpdateContact(c *gin.Context) { h.Update(c) }

// DeleteContact godoc
// @Summary Delete Contact
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID" format(uuid)
// @Success 200 {object} model.MessageResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/contacts/{id} [delete]
func (h ContactHandler) DeleteContact(c *gin.Context) { h.Delete(c) }
