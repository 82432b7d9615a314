package model

// CustomNote - 배경 이미지가 있는 노트
type CustomNote struct {
	Meta
	Title              string `json:"title"`
	Content            string `json:"content"`
	BackgroundImageURL string `json:"backgroundImageUrl"`
}

type CreateCustomNoteRequest struct {
	Title              string `json:"title"`
	Content            string `json:"content"`
	BackgroundImageURL string `json:"backgroundImageUrl"`
}

type UpdateCustomNoteRequest struct {
	Title              *string `json:"title,omitempty"`
	Content            *string `json:"content,omitempty"`
	BackgroundImageURL *string `json:"backgroundImageUrl,omitempty"`
}
