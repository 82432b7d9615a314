package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/notelog/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNote(owner uuid.UUID, content string, at time.Time) *model.Note {
	return &model.Note{
		Meta: model.Meta{
			ID:        uuid.New(),
			UserID:    owner,
			CreatedAt: at,
			UpdatedAt: at,
		},
		Title:   model.DefaultNoteTitle,
		Content: content,
	}
}

func TestMemoryCollection_ListScopedAndOrdered(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCollection(NotesTable)
	alice, bob := uuid.New(), uuid.New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, c.Insert(ctx, newNote(alice, "first", base)))
	require.NoError(t, c.Insert(ctx, newNote(alice, "second", base.Add(time.Minute))))
	require.NoError(t, c.Insert(ctx, newNote(bob, "bob's", base.Add(2*time.Minute))))

	list, err := c.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Content)
	assert.Equal(t, "first", list[1].Content)

	list, err = c.List(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestMemoryCollection_ContactsByName(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCollection(ContactsTable)
	owner := uuid.New()

	for _, name := range []string{"Carol", "alice", "Bob"} {
		require.NoError(t, c.Insert(ctx, &model.Contact{
			Meta: model.Meta{ID: uuid.New(), UserID: owner},
			Name: name, Phone: "1", Tag: model.ContactTagOther,
		}))
	}

	list, err := c.List(ctx, owner)
	require.NoError(t, err)
	names := []string{list[0].Name, list[1].Name, list[2].Name}
	assert.Equal(t, []string{"Bob", "Carol", "alice"}, names)
}

func TestMemoryCollection_UpdateOwnership(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCollection(NotesTable)
	alice, bob := uuid.New(), uuid.New()
	note := newNote(alice, "hello", time.Now())
	require.NoError(t, c.Insert(ctx, note))

	_, err := c.Update(ctx, bob, note.ID, func(n *model.Note) error {
		n.Content = "hijacked"
		return nil
	})
	require.ErrorIs(t, err, ErrNotFound)

	updated, err := c.Update(ctx, alice, note.ID, func(n *model.Note) error {
		n.Content = "edited"
		n.UserID = bob
		n.CreatedAt = time.Time{}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.Equal(t, alice, updated.UserID)
	assert.Equal(t, note.CreatedAt, updated.CreatedAt)

	list, err := c.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryCollection_UpdateMutateErrorKeepsRecord(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCollection(NotesTable)
	owner := uuid.New()
	note := newNote(owner, "keep", time.Now())
	require.NoError(t, c.Insert(ctx, note))

	boom := errors.New("boom")
	_, err := c.Update(ctx, owner, note.ID, func(n *model.Note) error {
		n.Content = "lost"
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := c.List(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "keep", list[0].Content)
}

func TestMemoryCollection_DeleteTwice(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCollection(TodosTable)
	owner := uuid.New()
	todo := &model.Todo{Meta: model.Meta{ID: uuid.New(), UserID: owner}, Title: "t"}
	require.NoError(t, c.Insert(ctx, todo))

	require.ErrorIs(t, c.Delete(ctx, uuid.New(), todo.ID), ErrNotFound)
	require.NoError(t, c.Delete(ctx, owner, todo.ID))
	require.ErrorIs(t, c.Delete(ctx, owner, todo.ID), ErrNotFound)
}

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryUsers()
	u := &model.User{ID: uuid.New(), Username: "alice", Email: "a@x.com", PasswordHash: "h"}

	require.NoError(t, users.CreateUser(ctx, u))
	require.ErrorIs(t, users.CreateUser(ctx, &model.User{ID: uuid.New(), Username: "alice", Email: "b@x.com"}), ErrConflict)
	require.ErrorIs(t, users.CreateUser(ctx, &model.User{ID: uuid.New(), Username: "bob", Email: "a@x.com"}), ErrConflict)

	got, err := users.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = users.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	require.NoError(t, users.DeleteUser(ctx, u.ID))
	_, err = users.GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, users.DeleteUser(ctx, u.ID), ErrNotFound)
}
