package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/notelog/backend/internal/model"
)

const (
	keySessionToken = "session:token"
	keySessionUser  = "session:user"
)

// Session - 로그인 상태. 빈 Token은 로그아웃 상태다.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *model.UserResponse
}

// Token - client.TokenSource 구현
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() *model.UserResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

func (s *Session) set(token string, user *model.UserResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// LoadSession - 저장된 세션을 읽는다. 없으면 로그아웃 상태의 Session.
func (s *Store) LoadSession(ctx context.Context) (*Session, error) {
	token, err := s.Get(ctx, keySessionToken)
	if err != nil {
		return nil, err
	}
	session := &Session{}
	if len(token) == 0 {
		return session, nil
	}

	var user *model.UserResponse
	raw, err := s.Get(ctx, keySessionUser)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		user = &model.UserResponse{}
		if err := json.Unmarshal(raw, user); err != nil {
			return nil, fmt.Errorf("failed to decode session user: %w", err)
		}
	}

	session.set(string(token), user)
	return session, nil
}

// SaveSession - 토큰과 사용자 정보를 저장하고 session에도 반영한다.
func (s *Store) SaveSession(ctx context.Context, session *Session, token string, user model.UserResponse) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session user: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsert = `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.ExecContext(ctx, upsert, keySessionToken, []byte(token)); err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, keySessionUser, raw); err != nil {
		return fmt.Errorf("failed to save session user: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}

	session.set(token, &user)
	return nil
}

// ClearSession - logout 또는 서버가 토큰을 거절했을 때
func (s *Store) ClearSession(ctx context.Context, session *Session) error {
	if err := s.Delete(ctx, keySessionToken); err != nil {
		return err
	}
	if err := s.Delete(ctx, keySessionUser); err != nil {
		return err
	}
	session.set("", nil)
	return nil
}
