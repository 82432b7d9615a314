package model

const DefaultNoteTitle = "Untitled Note"

type Note struct {
	Meta
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateNoteRequest - note 생성 요청. title이 비어 있으면 DefaultNoteTitle
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateNoteRequest - note 수정 요청. content는 항상 필수, title은 보낸 경우에만 바뀐다.
type UpdateNoteRequest struct {
	Title   *string `json:"title,omitempty"`
	Content string  `json:"content"`
}
