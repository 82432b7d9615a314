// NoteLog REST API와 HTTP 통신하는 클라이언트
//
// 환경변수:
//   - NOTELOG_API_URL: API base URL (예: http://localhost:5000/api)
//
// 토큰은 TokenSource로 주입받는다. 패키지 수준 상태는 없다.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/notelog/backend/internal/model"
)

// TokenSource - 요청마다 bearer token을 돌려준다. 빈 문자열이면 헤더를 생략한다.
type TokenSource interface {
	Token() string
}

// StaticToken - 고정 토큰
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// APIError - 2xx가 아닌 응답
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("notelog api: status %d", e.Status)
	}
	return fmt.Sprintf("notelog api: status %d: %s", e.Status, e.Message)
}

// IsUnauthorized - 토큰이 거절된 경우 (세션 폐기 대상)
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound - 존재하지 않거나 소유하지 않은 레코드
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if tokens == nil {
		tokens = StaticToken("")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// POST /auth/register
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// POST /auth/login
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GET /auth/me
func (c *Client) Me(ctx context.Context) (*model.UserResponse, error) {
	var resp model.UserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Notes() *Resource[model.Note, model.CreateNoteRequest, model.UpdateNoteRequest] {
	return &Resource[model.Note, model.CreateNoteRequest, model.UpdateNoteRequest]{c: c, path: "/notes"}
}

func (c *Client) Todos() *Resource[model.Todo, model.CreateTodoRequest, model.UpdateTodoRequest] {
	return &Resource[model.Todo, model.CreateTodoRequest, model.UpdateTodoRequest]{c: c, path: "/todos"}
}

func (c *Client) Contacts() *Resource[model.Contact, model.CreateContactRequest, model.UpdateContactRequest] {
	return &Resource[model.Contact, model.CreateContactRequest, model.UpdateContactRequest]{c: c, path: "/contacts"}
}

func (c *Client) CustomNotes() *Resource[model.CustomNote, model.CreateCustomNoteRequest, model.UpdateCustomNoteRequest] {
	return &Resource[model.CustomNote, model.CreateCustomNoteRequest, model.UpdateCustomNoteRequest]{c: c, path: "/custom-notes"}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errResp model.ErrorResponse
		if json.Unmarshal(raw, &errResp) == nil {
			apiErr.Message = errResp.Message
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
