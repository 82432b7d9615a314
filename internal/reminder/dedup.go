package reminder

import (
	"context"
	"sync"
)

// MemoryDedup - 프로세스 수명 동안만 유지되는 Dedup
type MemoryDedup struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewMemoryDedup() *MemoryDedup {
	return &MemoryDedup{keys: make(map[string]struct{})}
}

func (d *MemoryDedup) Seen(ctx context.Context, key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.keys[key]
	return ok, nil
}

func (d *MemoryDedup) MarkSeen(ctx context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys[key] = struct{}{}
	return nil
}
