package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/config"
	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/DanielPopoola/ficmart-storefront/internal/infrastructure/session"
	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionCfg = config.SessionConfig{
	Secret:     "0123456789abcdef0123456789abcdef",
	Issuer:     "storefront-test",
	TTL:        time.Hour,
	CookieName: "token",
}

func newManager(t *testing.T) (*session.Manager, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewManager(sessionCfg, session.NewRedisRevocationStore(client)), mr
}

func TestManager_IssueAndVerify(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	token, expiresAt, err := m.Issue("ada@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "ada@example.com", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestManager_RejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Verify(ctx, "not-a-token")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := session.NewManager(config.SessionConfig{Secret: "ffffffffffffffffffffffffffffffff", Issuer: sessionCfg.Issuer, TTL: time.Hour}, nil)
		token, _, err := other.Issue("ada@example.com")
		require.NoError(t, err)

		_, err = m.Verify(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("expired", func(t *testing.T) {
		past, _ := newManager(t)
		past.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
		token, _, err := past.Issue("ada@example.com")
		require.NoError(t, err)

		_, err = m.Verify(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := session.Claims{
			Email: "ada@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    sessionCfg.Issuer,
				ID:        "jti",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Verify(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}

func TestManager_Revoke(t *testing.T) {
	ctx := context.Background()
	m, mr := newManager(t)

	token, _, err := m.Issue("ada@example.com")
	require.NoError(t, err)
	claims, err := m.Verify(ctx, token)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, token))

	_, err = m.Verify(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	key := "session:revoked:" + claims.ID
	assert.True(t, mr.Exists(key))
	ttl := mr.TTL(key)
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)

	mr.FastForward(time.Hour + time.Second)
	assert.False(t, mr.Exists(key))

	assert.NoError(t, m.Revoke(ctx, "already-invalid"))
}
