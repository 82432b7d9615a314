package db

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/notelog/backend/internal/model"
)

// MemoryUsers - 프로세스 메모리 기반 사용자 저장소 (STORE_DRIVER=memory, 테스트)
type MemoryUsers struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[uuid.UUID]model.User)}
}

func (m *MemoryUsers) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == user.ID || u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
			return ErrConflict
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryUsers) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryUsers) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// DeleteUser - API로는 노출되지 않는 out-of-band 삭제. 소유 리소스는 남는다.
func (m *MemoryUsers) DeleteUser(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type memoryEntry[T any] struct {
	rec T
	seq uint64
}

// MemoryCollection - Collection과 같은 소유권 규칙을 따르는 메모리 구현
type MemoryCollection[T any] struct {
	mu      sync.RWMutex
	table   Table[T]
	seq     uint64
	records map[uuid.UUID]memoryEntry[T]
}

func NewMemoryCollection[T any](table Table[T]) *MemoryCollection[T] {
	return &MemoryCollection[T]{
		table:   table,
		records: make(map[uuid.UUID]memoryEntry[T]),
	}
}

func (c *MemoryCollection[T]) List(ctx context.Context, ownerID uuid.UUID) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]memoryEntry[T], 0)
	for _, e := range c.records {
		if c.table.Meta(&e.rec).UserID == ownerID {
			entries = append(entries, e)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := &entries[i].rec, &entries[j].rec
		if c.table.Less(a, b) {
			return true
		}
		if c.table.Less(b, a) {
			return false
		}
		return entries[i].seq > entries[j].seq
	})

	list := make([]T, 0, len(entries))
	for _, e := range entries {
		list = append(list, e.rec)
	}
	return list, nil
}

func (c *MemoryCollection[T]) Insert(ctx context.Context, rec *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.table.Meta(rec).ID
	if _, ok := c.records[id]; ok {
		return ErrConflict
	}
	c.seq++
	c.records[id] = memoryEntry[T]{rec: *rec, seq: c.seq}
	return nil
}

func (c *MemoryCollection[T]) Update(ctx context.Context, ownerID, id uuid.UUID, mutate func(*T) error) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.records[id]
	if !ok || c.table.Meta(&e.rec).UserID != ownerID {
		return nil, ErrNotFound
	}

	createdAt := c.table.Meta(&e.rec).CreatedAt
	rec := e.rec
	if err := mutate(&rec); err != nil {
		return nil, err
	}

	// id/user_id/created_at은 UPDATE 대상이 아니다
	meta := c.table.Meta(&rec)
	meta.ID = id
	meta.UserID = ownerID
	meta.CreatedAt = createdAt

	e.rec = rec
	c.records[id] = e
	return &rec, nil
}

func (c *MemoryCollection[T]) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.records[id]
	if !ok || c.table.Meta(&e.rec).UserID != ownerID {
		return ErrNotFound
	}
	delete(c.records, id)
	return nil
}
