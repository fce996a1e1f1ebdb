package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T, expiry time.Duration) *Manager {
	t.Helper()
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	return NewManager(hash, testSecret, expiry)
}

func TestLoginAndValidate(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	token, err := manager.Login("correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, "operator", claims.Subject)
	assert.Equal(t, "medequip-console", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	token, err := manager.Login("battery staple")
	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestValidate_ExpiredSession(t *testing.T) {
	manager := newTestManager(t, -time.Minute)

	token, err := manager.Login("correct horse")
	require.NoError(t, err)

	claims, err := manager.Validate(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpiredSession)
}

func TestValidate_GarbageToken(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	claims, err := manager.Validate("not.a.token")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidate_WrongSecret(t *testing.T) {
	issuer := newTestManager(t, time.Hour)
	token, err := issuer.Login("correct horse")
	require.NoError(t, err)

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	verifier := NewManager(hash, "ffffffffffffffffffffffffffffffff", time.Hour)

	claims, err := verifier.Validate(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
