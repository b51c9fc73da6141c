package auth_test

import (
	"testing"
	"time"

	"drawspace/backend/internal/auth"
	"drawspace/backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiresIn time.Duration) *auth.Service {
	return auth.NewService(&config.Config{
		JWT: config.JWTConfig{
			Secret:          []byte("test-secret"),
			ExpiresIn:       expiresIn,
			InviteExpiresIn: expiresIn,
		},
	})
}

func TestSessionToken_RoundTrip(t *testing.T) {
	svc := newTestService(time.Hour)

	token, err := svc.GenerateToken("user-123")
	require.NoError(t, err)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerifyToken_FailsClosed(t *testing.T) {
	svc := newTestService(time.Hour)

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"unsigned", "eyJhbGciOiJub25lIn0.eyJ1c2VyX2lkIjoidSJ9."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			userID, err := svc.VerifyToken(tc.token)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
			assert.Empty(t, userID)
		})
	}
}

func TestVerifyToken_RejectsExpired(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, err := svc.GenerateToken("user-123")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyToken_RejectsForeignKey(t *testing.T) {
	token, err := newTestService(time.Hour).GenerateToken("user-123")
	require.NoError(t, err)

	other := auth.NewService(&config.Config{
		JWT: config.JWTConfig{Secret: []byte("other-secret"), ExpiresIn: time.Hour},
	})
	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestInviteToken_RoundTrip(t *testing.T) {
	svc := newTestService(time.Hour)

	token, err := svc.GenerateInviteToken("user-123", 42, "editor")
	require.NoError(t, err)

	invite, err := svc.VerifyInviteToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", invite.UserID)
	assert.Equal(t, int64(42), invite.RoomID)
	assert.Equal(t, "editor", invite.Role)
	assert.NotEmpty(t, invite.ID)

	// Every invite gets its own jti so redemption can be single-use.
	second, err := svc.GenerateInviteToken("user-123", 42, "editor")
	require.NoError(t, err)
	otherInvite, err := svc.VerifyInviteToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, invite.ID, otherInvite.ID)
}

func TestInviteToken_SessionTokenIsNotAnInvite(t *testing.T) {
	svc := newTestService(time.Hour)

	token, err := svc.GenerateToken("user-123")
	require.NoError(t, err)

	_, err = svc.VerifyInviteToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, auth.CheckPassword(hash, "hunter22"))
	assert.False(t, auth.CheckPassword(hash, "hunter23"))
}
