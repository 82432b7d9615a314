package localstore

import "context"

const reminderPrefix = "reminder:"

// Seen - 이미 발송된 reminder key인지
func (s *Store) Seen(ctx context.Context, key string) (bool, error) {
	v, err := s.Get(ctx, reminderPrefix+key)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

// MarkSeen - reminder key를 기록한다. 세션이 바뀌어도 유지된다.
func (s *Store) MarkSeen(ctx context.Context, key string) error {
	return s.Set(ctx, reminderPrefix+key, []byte{1})
}
