package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T, ttl time.Duration) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer("test-secret", ttl)
	require.NoError(t, err)
	return issuer
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	id := uuid.New()

	token, err := issuer.Issue(id)
	require.NoError(t, err)

	got, err := issuer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := newTestIssuer(t, time.Minute)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return start }

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	issuer.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = issuer.Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenIssuer_FlippedSignature(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Verify(flipSignature(token))
	require.ErrorIs(t, err, ErrTokenSignature)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	other, err := NewTokenIssuer("other-secret", time.Hour)
	require.NoError(t, err)
	token, err := other.Issue(uuid.New())
	require.NoError(t, err)

	_, err = newTestIssuer(t, time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrTokenSignature)
}

func TestTokenIssuer_Malformed(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := issuer.Verify(tok)
		require.ErrorIs(t, err, ErrTokenMalformed, tok)
	}
}

func TestTokenIssuer_NonUUIDSubject(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenIssuer_RequiresExpiry(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	claims := jwt.RegisteredClaims{Subject: uuid.NewString()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.Error(t, err)
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.Error(t, err)
}

func TestNewTokenIssuer_Misconfigured(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	require.ErrorIs(t, err, ErrMisconfigured)

	_, err = NewTokenIssuer("s", 0)
	require.ErrorIs(t, err, ErrMisconfigured)
}

// flipSignature - 서명 세그먼트 중간의 문자 하나를 바꾼다
func flipSignature(token string) string {
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	i := len(sig) / 2
	if sig[i] == 'A' {
		sig[i] = 'B'
	} else {
		sig[i] = 'A'
	}
	parts[2] = string(sig)
	return strings.Join(parts, ".")
}
