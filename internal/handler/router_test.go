package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/notelog/backend/internal/db"
	"github.com/notelog/backend/internal/model"
	"github.com/notelog/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	users  *db.MemoryUsers
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := db.NewMemoryUsers()
	issuer, err := service.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(Services{
		Auth:        service.NewAuthService(users, issuer),
		Notes:       service.NewNoteService(db.NewMemoryCollection(db.NotesTable)),
		Todos:       service.NewTodoService(db.NewMemoryCollection(db.TodosTable)),
		Contacts:    service.NewContactService(db.NewMemoryCollection(db.ContactsTable)),
		CustomNotes: service.NewCustomNoteService(db.NewMemoryCollection(db.CustomNotesTable)),
	}, []string{"http://localhost:5173"}, log)

	return &testServer{router: router, users: users}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) register(t *testing.T, username string) model.AuthResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", "", model.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp model.AuthResponse
	decode(t, rec, &resp)
	return resp
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp model.ErrorResponse
	decode(t, rec, &resp)
	return resp.Message
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/ping", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOpenAPIDoc(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/openapi.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	decode(t, rec, &doc)
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	for _, base := range []string{"/api/notes", "/api/todos", "/api/contacts", "/api/custom-notes"} {
		assert.Contains(t, paths, base)
		assert.Contains(t, paths, base+"/{id}")
	}

	noteByID, ok := paths["/api/notes/{id}"].(map[string]any)
	require.True(t, ok)
	put, ok := noteByID["put"].(map[string]any)
	require.True(t, ok)
	raw, err := json.Marshal(put["parameters"])
	require.NoError(t, err)
	assert.Contains(t, string(raw), "#/definitions/model.UpdateNoteRequest")
}

func TestUnmatchedRoutesUseMessageBody(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "alice")

	rec := s.do(t, http.MethodGet, "/api/notez", auth.Token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, "not found", message(t, rec))

	rec = s.do(t, http.MethodPatch, "/api/notes", auth.Token, nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method not allowed", message(t, rec))
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "alice")
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, int64(3600), auth.ExpiresIn)
	assert.Equal(t, "alice@example.com", auth.User.Email)

	rec := s.do(t, http.MethodGet, "/api/auth/me", auth.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me model.UserResponse
	decode(t, rec, &me)
	assert.Equal(t, auth.User.ID, me.ID)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", model.LoginRequest{Email: "alice@example.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", model.LoginRequest{Email: "alice@example.com", Password: "nope123"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", message(t, rec))

	rec = s.do(t, http.MethodPost, "/api/auth/register", "", model.RegisterRequest{
		Username: "alice2", Email: "alice@example.com", Password: "secret1",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/register", "", model.RegisterRequest{
		Username: "bob", Email: "not-an-email", Password: "secret1",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid input", message(t, rec))
}

func TestAuthGateRejections(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "alice")

	rec := s.do(t, http.MethodGet, "/api/todos", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "no token provided", message(t, rec))

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "no token provided", message(t, rec))

	rec = s.do(t, http.MethodGet, "/api/todos", "garbage", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid token", message(t, rec))

	parts := strings.Split(auth.Token, ".")
	sig := []byte(parts[2])
	if sig[len(sig)/2] == 'A' {
		sig[len(sig)/2] = 'B'
	} else {
		sig[len(sig)/2] = 'A'
	}
	parts[2] = string(sig)
	rec = s.do(t, http.MethodGet, "/api/auth/me", strings.Join(parts, "."), nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid token", message(t, rec))
}

func TestDeletedUserTokenRejected(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "alice")

	rec := s.do(t, http.MethodPost, "/api/notes", auth.Token, model.CreateNoteRequest{Content: "hello"})
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NoError(t, s.users.DeleteUser(context.Background(), auth.User.ID))

	for _, path := range []string{"/api/notes", "/api/auth/me"} {
		rec = s.do(t, http.MethodGet, path, auth.Token, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, "user no longer exists", message(t, rec))
	}
}

func TestTodoLifecycle(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "alice")

	remind := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	rec := s.do(t, http.MethodPost, "/api/todos", auth.Token, model.CreateTodoRequest{
		Title:        "buy milk",
		ReminderDate: &remind,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var todo model.Todo
	decode(t, rec, &todo)
	assert.Equal(t, auth.User.ID, todo.UserID)
	assert.False(t, todo.IsCompleted)
	require.NotNil(t, todo.ReminderDate)
	assert.True(t, remind.Equal(*todo.ReminderDate))

	rec = s.do(t, http.MethodGet, "/api/todos", auth.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.Todo
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, todo.ID, list[0].ID)

	done := true
	rec = s.do(t, http.MethodPut, "/api/todos/"+todo.ID.String(), auth.Token, model.UpdateTodoRequest{IsCompleted: &done})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated model.Todo
	decode(t, rec, &updated)
	assert.True(t, updated.IsCompleted)
	assert.Equal(t, "buy milk", updated.Title)

	rec = s.do(t, http.MethodDelete, "/api/todos/"+todo.ID.String(), auth.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Todo deleted successfully", message(t, rec))

	rec = s.do(t, http.MethodDelete, "/api/todos/"+todo.ID.String(), auth.Token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Todo not found", message(t, rec))
}

func TestCrossUserAccessIsNotFound(t *testing.T) {
	s := newTestServer(t)
	alice := s.register(t, "alice")
	bob := s.register(t, "bobby")

	rec := s.do(t, http.MethodPost, "/api/contacts", alice.Token, model.CreateContactRequest{Name: "Mom", Phone: "010"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var contact model.Contact
	decode(t, rec, &contact)

	rec = s.do(t, http.MethodGet, "/api/contacts", bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	name := "Hacked"
	rec = s.do(t, http.MethodPut, "/api/contacts/"+contact.ID.String(), bob.Token, model.UpdateContactRequest{Name: &name})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/contacts/"+contact.ID.String(), bob.Token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/contacts/"+uuid.NewString(), alice.Token, model.UpdateContactRequest{Name: &name})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/contacts", alice.Token, nil)
	var list []model.Contact
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Mom", list[0].Name)
}

func TestCreateIgnoresClientOwner(t *testing.T) {
	s := newTestServer(t)
	alice := s.register(t, "alice")
	bob := s.register(t, "bobby")

	body := map[string]any{
		"content": "mine",
		"userId":  bob.User.ID.String(),
	}
	rec := s.do(t, http.MethodPost, "/api/notes", alice.Token, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	var note model.Note
	decode(t, rec, &note)
	assert.Equal(t, alice.User.ID, note.UserID)
	assert.Equal(t, model.DefaultNoteTitle, note.Title)

	rec = s.do(t, http.MethodGet, "/api/notes", bob.Token, nil)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestNoteUpdateWithoutTitleKeepsTitle(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "alice")

	rec := s.do(t, http.MethodPost, "/api/notes", auth.Token, model.CreateNoteRequest{Title: "Groceries", Content: "milk"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var note model.Note
	decode(t, rec, &note)

	rec = s.do(t, http.MethodPut, "/api/notes/"+note.ID.String(), auth.Token, map[string]string{"content": "milk, eggs"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &note)
	assert.Equal(t, "Groceries", note.Title)
	assert.Equal(t, "milk, eggs", note.Content)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "alice")

	rec := s.do(t, http.MethodDelete, "/api/notes/not-a-uuid", auth.Token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Note not found", message(t, rec))

	rec = s.do(t, http.MethodPut, "/api/custom-notes/123", auth.Token, model.UpdateCustomNoteRequest{})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidationFailureCreatesNothing(t *testing.T) {
	s := newTestServer(t)
	auth := s.register(t, "alice")

	tests := []struct {
		path string
		body any
	}{
		{"/api/notes", model.CreateNoteRequest{Title: "only title"}},
		{"/api/todos", model.CreateTodoRequest{Description: "no title"}},
		{"/api/contacts", model.CreateContactRequest{Name: "no phone"}},
		{"/api/contacts", model.CreateContactRequest{Name: "x", Phone: "1", Tag: "enemy"}},
		{"/api/custom-notes", model.CreateCustomNoteRequest{Title: "no image"}},
	}
	for _, tt := range tests {
		rec := s.do(t, http.MethodPost, tt.path, auth.Token, tt.body)
		require.Equal(t, http.StatusBadRequest, rec.Code, tt.path)
		assert.Equal(t, "invalid input", message(t, rec))

		rec = s.do(t, http.MethodGet, tt.path, auth.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String(), tt.path)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader("{not json"))
	req.Header.Set("Authorization", "Bearer "+auth.Token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/notes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/notes", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
