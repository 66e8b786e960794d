package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/light-bringer/perfume-catalog/internal/pkg/clock"
)

const testPassword = "s3cret-pass"

func newTestService(t *testing.T, remoteConfigured bool) (*Service, *clock.MockClock) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	clk := clock.NewMockClock(time.Now().UTC())
	svc := NewService(Config{
		PasswordHash: string(hash),
		Secret:       "test-secret",
		TokenTTL:     time.Hour,
	}, remoteConfigured, clk, zap.NewNop())
	return svc, clk
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("admin credentials issue a token", func(t *testing.T) {
		svc, clk := newTestService(t, true)

		res, err := svc.Login(ctx, "  Admin@TahaPerfume.com ", " "+testPassword+" ")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, DefaultAdminEmail, res.Session.Email)
		assert.WithinDuration(t, clk.Now().Add(time.Hour), res.Session.ExpiresAt, time.Second)

		session, err := svc.Authenticate(ctx, res.Token)
		require.NoError(t, err)
		assert.True(t, svc.IsAdmin(session))
	})

	t.Run("remote backend not configured", func(t *testing.T) {
		svc, _ := newTestService(t, false)
		_, err := svc.Login(ctx, DefaultAdminEmail, testPassword)
		assert.ErrorIs(t, err, ErrRemoteNotConfigured)
		assert.Equal(t, "remote backend not configured", err.Error())
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newTestService(t, true)
		_, err := svc.Login(ctx, DefaultAdminEmail, "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("non-admin identity", func(t *testing.T) {
		svc, _ := newTestService(t, true)
		_, err := svc.Login(ctx, "someone@example.com", testPassword)
		assert.ErrorIs(t, err, ErrNotAdmin)
		assert.Equal(t, "Not authorized as admin", err.Error())
	})

	t.Run("blank input", func(t *testing.T) {
		svc, _ := newTestService(t, true)
		_, err := svc.Login(ctx, "  ", testPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("expired token", func(t *testing.T) {
		svc, clk := newTestService(t, true)
		res, err := svc.Login(ctx, DefaultAdminEmail, testPassword)
		require.NoError(t, err)

		clk.Advance(2 * time.Hour)
		_, err = svc.Authenticate(ctx, res.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		svc, _ := newTestService(t, true)
		other := NewService(Config{Secret: "other", PasswordHash: string(svc.passwordHash)}, true, svc.clock, zap.NewNop())
		res, err := other.Login(ctx, DefaultAdminEmail, testPassword)
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, res.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc, _ := newTestService(t, true)
		_, err := svc.Authenticate(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, true)

	res, err := svc.Login(ctx, DefaultAdminEmail, testPassword)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, res.Token))
	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	second, err := svc.Login(ctx, DefaultAdminEmail, testPassword)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, second.Token)
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(ctx, "garbage"))
}

func TestService_IsAdmin(t *testing.T) {
	svc, _ := newTestService(t, true)

	assert.False(t, svc.IsAdmin(nil))
	assert.False(t, svc.IsAdmin(&Session{Email: "ADMIN@tahaperfume.com"}))
	assert.True(t, svc.IsAdmin(&Session{Email: "admin@tahaperfume.com"}))
}

func TestSessionContext(t *testing.T) {
	_, ok := SessionFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithSession(context.Background(), &Session{Email: DefaultAdminEmail})
	s, ok := SessionFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, DefaultAdminEmail, s.Email)

	_, ok = SessionFromContext(WithSession(context.Background(), nil))
	assert.False(t, ok)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword(" pw ")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw")))
}
