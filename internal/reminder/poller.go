// Package reminder runs the client-side reminder scan over loaded todos.
//
// A reminder fires once per {todo id, reminder timestamp}: the key is
// persisted after a successful notification, so editing the reminder time
// arms it again. Reminders whose window elapsed while the poller was not
// running are never delivered.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/notelog/backend/internal/model"
	tmpl "github.com/notelog/backend/internal/template"
)

const (
	DefaultInterval = time.Second
	DefaultWindow   = 120 * time.Second

	NotificationTitle = "Todo Reminder"
)

// Dedup - 이미 발송된 reminder key 저장소 (localstore.Store)
type Dedup interface {
	Seen(ctx context.Context, key string) (bool, error)
	MarkSeen(ctx context.Context, key string) error
}

type Poller struct {
	board    *Board
	notifier Notifier
	dedup    Dedup
	log      *slog.Logger

	interval time.Duration
	window   time.Duration
	body     string
	username string
	now      func() time.Time
}

type Option func(*Poller)

func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

func WithWindow(d time.Duration) Option {
	return func(p *Poller) {
		if d >= 0 {
			p.window = d
		}
	}
}

// WithBody - 알림 본문 템플릿 ({{todo.title}} 등)
func WithBody(body string) Option {
	return func(p *Poller) {
		if body != "" {
			p.body = body
		}
	}
}

// WithUsername - {{user.username}}에 들어갈 로그인 사용자 이름
func WithUsername(username string) Option {
	return func(p *Poller) { p.username = username }
}

func WithClock(now func() time.Time) Option {
	return func(p *Poller) { p.now = now }
}

func NewPoller(board *Board, notifier Notifier, dedup Dedup, log *slog.Logger, opts ...Option) *Poller {
	p := &Poller{
		board:    board,
		notifier: notifier,
		dedup:    dedup,
		log:      log,
		interval: DefaultInterval,
		window:   DefaultWindow,
		body:     tmpl.DefaultReminderBody,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key - dedup key ("<todo id>:<reminder unix millis>")
func Key(todo model.Todo) string {
	return fmt.Sprintf("%s:%d", todo.ID, todo.ReminderDate.UnixMilli())
}

// Due - 완료되지 않았고 0 <= now-reminder <= window 인 경우
func Due(todo model.Todo, now time.Time, window time.Duration) bool {
	if todo.IsCompleted || todo.ReminderDate == nil {
		return false
	}
	elapsed := now.Sub(*todo.ReminderDate)
	return elapsed >= 0 && elapsed <= window
}

// Tick - 한 번 스캔하고 발송한 알림 수를 돌려준다. 네트워크 호출은 notifier에만 있다.
func (p *Poller) Tick(ctx context.Context) (int, error) {
	if !p.notifier.Permitted() {
		return 0, nil
	}

	now := p.now()
	fired := 0
	for _, todo := range p.board.Snapshot() {
		if !Due(todo, now, p.window) {
			continue
		}

		key := Key(todo)
		seen, err := p.dedup.Seen(ctx, key)
		if err != nil {
			return fired, fmt.Errorf("failed to read reminder key: %w", err)
		}
		if seen {
			continue
		}

		note := Notification{
			Title:    NotificationTitle,
			Body:     tmpl.RenderReminder(p.body, tmpl.TodoDataFromModel(todo), p.username),
			Todo:     todo,
			Username: p.username,
		}
		// 발송 실패 시 key를 남기지 않아 window 안에서 다시 시도된다
		if err := p.notifier.Notify(ctx, note); err != nil {
			p.log.Warn("failed to deliver reminder", slog.String("todo_id", todo.ID.String()), slog.Any("error", err))
			continue
		}
		if err := p.dedup.MarkSeen(ctx, key); err != nil {
			return fired, fmt.Errorf("failed to persist reminder key: %w", err)
		}
		fired++
		p.log.Debug("reminder fired", slog.String("todo_id", todo.ID.String()))
	}
	return fired, nil
}

// Run - ctx가 취소될 때까지 interval마다 Tick. 각 Tick은 끝까지 실행된 뒤 다음 Tick을 기다린다.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := p.Tick(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				p.log.Error("reminder tick failed", slog.Any("error", err))
			}
		}
	}
}
