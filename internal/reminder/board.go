package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/notelog/backend/internal/model"
)

// Board - poller가 읽는 todo 스냅샷. refresh 루프가 통째로 교체한다.
type Board struct {
	mu    sync.RWMutex
	todos []model.Todo
}

func NewBoard() *Board {
	return &Board{}
}

func (b *Board) Replace(todos []model.Todo) {
	cp := make([]model.Todo, len(todos))
	copy(cp, todos)

	b.mu.Lock()
	b.todos = cp
	b.mu.Unlock()
}

func (b *Board) Snapshot() []model.Todo {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cp := make([]model.Todo, len(b.todos))
	copy(cp, b.todos)
	return cp
}

const DefaultRefreshInterval = 30 * time.Second

// FetchFunc - 서버에서 현재 todo 목록을 가져온다
type FetchFunc func(ctx context.Context) ([]model.Todo, error)

// Refresh - fetch 결과로 board를 교체한다
func (b *Board) Refresh(ctx context.Context, fetch FetchFunc) error {
	todos, err := fetch(ctx)
	if err != nil {
		return err
	}
	b.Replace(todos)
	return nil
}

// RunRefresh - interval마다 board를 갱신한다. 실패는 로그만 남기고 이전 스냅샷을 유지한다.
// onError가 true를 돌려주면 루프를 멈추고 그 에러를 반환한다.
func (b *Board) RunRefresh(ctx context.Context, interval time.Duration, fetch FetchFunc, log *slog.Logger, onError func(error) bool) error {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := b.Refresh(ctx, fetch); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.Warn("failed to refresh todos", slog.Any("error", err))
				if onError != nil && onError(err) {
					return err
				}
			}
		}
	}
}
