package service

import "github.com/notelog/backend/internal/model"

type NoteService = Resource[model.Note, model.CreateNoteRequest, model.UpdateNoteRequest]

func NewNoteService(store OwnedStore[model.Note]) *NoteService {
	return newResource(store, noteMeta, buildNote, applyNote)
}

func noteMeta(n *model.Note) *model.Meta { return &n.Meta }

func buildNote(req model.CreateNoteRequest) (model.Note, error) {
	if blank(req.Content) {
		return model.Note{}, ErrInvalidInput
	}
	n := model.Note{Title: req.Title, Content: req.Content}
	if blank(n.Title) {
		n.Title = model.DefaultNoteTitle
	}
	return n, nil
}

// applyNote - content는 매번 교체, title은 요청에 있을 때만 교체
func applyNote(n *model.Note, req model.UpdateNoteRequest) error {
	if blank(req.Content) {
		return ErrInvalidInput
	}
	n.Content = req.Content
	if req.Title != nil {
		n.Title = *req.Title
	}
	return nil
}
