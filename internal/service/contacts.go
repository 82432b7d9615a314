package service

import "github.com/notelog/backend/internal/model"

type ContactService = Resource[model.Contact, model.CreateContactRequest, model.UpdateContactRequest]

func NewContactService(store OwnedStore[model.Contact]) *ContactService {
	return newResource(store, contactMeta, buildContact, applyContact)
}

func contactMeta(c *model.Contact) *model.Meta { return &c.Meta }

func buildContact(req model.CreateContactRequest) (model.Contact, error) {
	if blank(req.Name) || blank(req.Phone) {
		return model.Contact{}, ErrInvalidInput
	}
	tag := req.Tag
	if tag == "" {
		tag = model.ContactTagOther
	}
	if !tag.Valid() {
		return model.Contact{}, ErrInvalidInput
	}
	return model.Contact{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Tag:     tag,
		Address: req.Address,
	}, nil
}

func applyContact(c *model.Contact, req model.UpdateContactRequest) error {
	if req.Name != nil && blank(*req.Name) {
		return ErrInvalidInput
	}
	if req.Phone != nil && blank(*req.Phone) {
		return ErrInvalidInput
	}
	if req.Tag != nil && !req.Tag.Valid() {
		return ErrInvalidInput
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Tag != nil {
		c.Tag = *req.Tag
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	return nil
}
