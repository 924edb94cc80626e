package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemos/mnemos-api/internal/config"
)

const testSecret = "test-secret-that-is-at-least-32-chars!!"

func newTestService(t *testing.T, now time.Time) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	require.NoError(t, err)
	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)
	impl.timeFunc = func() time.Time { return now }
	return impl
}

// signToken builds a token the way the external issuer would.
func signToken(
	t *testing.T,
	secret string,
	userID uuid.UUID,
	issuedAt, expiresAt time.Time,
	method jwt.SigningMethod,
) string {
	t.Helper()
	claims := jwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestNewJWTService_ShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "too-short"})
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, now)
		token := signToken(t, testSecret, userID,
			now.Add(-time.Minute), now.Add(time.Hour), jwt.SigningMethodHS256)

		got, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, now)
		token := signToken(t, testSecret, userID,
			now.Add(-2*time.Hour), now.Add(-time.Hour), jwt.SigningMethodHS256)

		_, err := svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("expiry within clock skew is tolerated", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, now)
		token := signToken(t, testSecret, userID,
			now.Add(-time.Hour), now.Add(-time.Minute), jwt.SigningMethodHS256)

		_, err := svc.ValidateToken(context.Background(), token)
		assert.NoError(t, err)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, now)
		token := signToken(t, "another-secret-also-32-characters-long", userID,
			now.Add(-time.Minute), now.Add(time.Hour), jwt.SigningMethodHS256)

		_, err := svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing method", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, now)
		token := signToken(t, testSecret, userID,
			now.Add(-time.Minute), now.Add(time.Hour), jwt.SigningMethodHS512)

		_, err := svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, now)
		_, err := svc.ValidateToken(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user ID claim", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, now)
		token := signToken(t, testSecret, uuid.Nil,
			now.Add(-time.Minute), now.Add(time.Hour), jwt.SigningMethodHS256)

		_, err := svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
