package db

import "github.com/notelog/backend/internal/model"

func newerFirst(a, b *model.Meta) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

// NotesTable - notes (최신순)
var NotesTable = Table[model.Note]{
	Name:    "notes",
	Columns: []string{"title", "content"},
	OrderBy: "created_at DESC",
	Meta:    func(n *model.Note) *model.Meta { return &n.Meta },
	Dest:    func(n *model.Note) []any { return []any{&n.Title, &n.Content} },
	Args:    func(n *model.Note) []any { return []any{n.Title, n.Content} },
	Less:    func(a, b *model.Note) bool { return newerFirst(&a.Meta, &b.Meta) },
}

// TodosTable - todos (최신순)
var TodosTable = Table[model.Todo]{
	Name:    "todos",
	Columns: []string{"title", "description", "is_completed", "reminder_date"},
	OrderBy: "created_at DESC",
	Meta:    func(t *model.Todo) *model.Meta { return &t.Meta },
	Dest: func(t *model.Todo) []any {
		return []any{&t.Title, &t.Description, &t.IsCompleted, &t.ReminderDate}
	},
	Args: func(t *model.Todo) []any {
		return []any{t.Title, t.Description, t.IsCompleted, t.ReminderDate}
	},
	Less: func(a, b *model.Todo) bool { return newerFirst(&a.Meta, &b.Meta) },
}

// ContactsTable - contacts (이름순)
var ContactsTable = Table[model.Contact]{
	Name:    "contacts",
	Columns: []string{"name", "phone", "email", "tag", "address"},
	OrderBy: "name ASC",
	Meta:    func(c *model.Contact) *model.Meta { return &c.Meta },
	Dest: func(c *model.Contact) []any {
		return []any{&c.Name, &c.Phone, &c.Email, &c.Tag, &c.Address}
	},
	Args: func(c *model.Contact) []any {
		return []any{c.Name, c.Phone, c.Email, string(c.Tag), c.Address}
	},
	Less: func(a, b *model.Contact) bool { return a.Name < b.Name },
}

// CustomNotesTable - custom_notes (최신순)
var CustomNotesTable = Table[model.CustomNote]{
	Name:    "custom_notes",
	Columns: []string{"title", "content", "background_image_url"},
	OrderBy: "created_at DESC",
	Meta:    func(n *model.CustomNote) *model.Meta { return &n.Meta },
	Dest: func(n *model.CustomNote) []any {
		return []any{&n.Title, &n.Content, &n.BackgroundImageURL}
	},
	Args: func(n *model.CustomNote) []any {
		return []any{n.Title, n.Content, n.BackgroundImageURL}
	},
	Less: func(a, b *model.CustomNote) bool { return newerFirst(&a.Meta, &b.Meta) },
}
