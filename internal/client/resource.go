package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/notelog/backend/internal/model"
)

// Resource - 소유 리소스 하나(/notes, /todos, ...)에 대한 CRUD
type Resource[T, C, U any] struct {
	c    *Client
	path string
}

func (r *Resource[T, C, U]) List(ctx context.Context) ([]T, error) {
	var list []T
	if err := r.c.do(ctx, http.MethodGet, r.path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *Resource[T, C, U]) Create(ctx context.Context, req C) (*T, error) {
	var rec T
	if err := r.c.do(ctx, http.MethodPost, r.path, req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Resource[T, C, U]) Update(ctx context.Context, id uuid.UUID, req U) (*T, error) {
	var rec T
	if err := r.c.do(ctx, http.MethodPut, r.path+"/"+id.String(), req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Resource[T, C, U]) Delete(ctx context.Context, id uuid.UUID) error {
	var resp model.MessageResponse
	return r.c.do(ctx, http.MethodDelete, r.path+"/"+id.String(), nil, &resp)
}
