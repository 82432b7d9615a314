package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/notelog/backend/internal/db"
	"github.com/notelog/backend/internal/model"
)

// OwnedStore - 사용자 소유 리소스 저장소 (db.Collection, db.MemoryCollection)
type OwnedStore[T any] interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]T, error)
	Insert(ctx context.Context, rec *T) error
	Update(ctx context.Context, ownerID, id uuid.UUID, mutate func(*T) error) (*T, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// Resource - 네 가지 리소스가 공유하는 소유권 스코프 CRUD.
//
// build는 생성 요청을 검증해 레코드를 만들고, apply는 수정 요청을 검증해
// 기존 레코드에 반영한다. 둘 다 검증 실패 시 ErrInvalidInput을 돌려준다.
type Resource[T, C, U any] struct {
	store OwnedStore[T]
	meta  func(*T) *model.Meta
	build func(C) (T, error)
	apply func(*T, U) error
	now   func() time.Time
}

func newResource[T, C, U any](
	store OwnedStore[T],
	meta func(*T) *model.Meta,
	build func(C) (T, error),
	apply func(*T, U) error,
) *Resource[T, C, U] {
	return &Resource[T, C, U]{
		store: store,
		meta:  meta,
		build: build,
		apply: apply,
		now:   time.Now,
	}
}

func (r *Resource[T, C, U]) List(ctx context.Context, principal model.Principal) ([]T, error) {
	return r.store.List(ctx, principal.ID)
}

func (r *Resource[T, C, U]) Create(ctx context.Context, principal model.Principal, req C) (*T, error) {
	rec, err := r.build(req)
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	meta := r.meta(&rec)
	meta.ID = uuid.New()
	meta.UserID = principal.ID
	meta.CreatedAt = now
	meta.UpdatedAt = now

	if err := r.store.Insert(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Resource[T, C, U]) Update(ctx context.Context, principal model.Principal, id uuid.UUID, req U) (*T, error) {
	rec, err := r.store.Update(ctx, principal.ID, id, func(rec *T) error {
		if err := r.apply(rec, req); err != nil {
			return err
		}
		r.meta(rec).UpdatedAt = r.now().UTC()
		return nil
	})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *Resource[T, C, U]) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := r.store.Delete(ctx, principal.ID, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func blank(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}
