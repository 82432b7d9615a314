package service

import "github.com/notelog/backend/internal/model"

type CustomNoteService = Resource[model.CustomNote, model.CreateCustomNoteRequest, model.UpdateCustomNoteRequest]

func NewCustomNoteService(store OwnedStore[model.CustomNote]) *CustomNoteService {
	return newResource(store, customNoteMeta, buildCustomNote, applyCustomNote)
}

func customNoteMeta(n *model.CustomNote) *model.Meta { return &n.Meta }

func buildCustomNote(req model.CreateCustomNoteRequest) (model.CustomNote, error) {
	if blank(req.Title) || blank(req.BackgroundImageURL) {
		return model.CustomNote{}, ErrInvalidInput
	}
	return model.CustomNote{
		Title:              req.Title,
		Content:            req.Content,
		BackgroundImageURL: req.BackgroundImageURL,
	}, nil
}

func applyCustomNote(n *model.CustomNote, req model.UpdateCustomNoteRequest) error {
	if req.Title != nil && blank(*req.Title) {
		return ErrInvalidInput
	}
	if req.BackgroundImageURL != nil && blank(*req.BackgroundImageURL) {
		return ErrInvalidInput
	}

	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Content != nil {
		n.Content = *req.Content
	}
	if req.BackgroundImageURL != nil {
		n.BackgroundImageURL = *req.BackgroundImageURL
	}
	return nil
}
