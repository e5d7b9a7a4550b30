package auth

import (
	"testing"
	"time"

	"github.com/crime-alert/backend/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	manager, err := NewManager(config.JWTConfig{
		AccessTokenTTL: time.Hour,
		SigningKey:     "test-signing-key",
	})
	require.NoError(t, err)

	userID := uuid.New()

	token, ttl, err := manager.NewJWT(userID, "citizen", "john@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, time.Hour, ttl)

	claims, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "citizen", claims.Role)
	assert.Equal(t, "john@example.com", claims.Email)
}

func TestManager_ExpiredToken(t *testing.T) {
	manager, err := NewManager(config.JWTConfig{
		AccessTokenTTL: -time.Minute,
		SigningKey:     "test-signing-key",
	})
	require.NoError(t, err)

	token, _, err := manager.NewJWT(uuid.New(), "citizen", "john@example.com")
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.ErrorIs(t, err, ErrAccessTokenExpired)
}

func TestManager_WrongSigningKey(t *testing.T) {
	first, err := NewManager(config.JWTConfig{AccessTokenTTL: time.Hour, SigningKey: "key-one"})
	require.NoError(t, err)
	second, err := NewManager(config.JWTConfig{AccessTokenTTL: time.Hour, SigningKey: "key-two"})
	require.NoError(t, err)

	token, _, err := first.NewJWT(uuid.New(), "citizen", "john@example.com")
	require.NoError(t, err)

	_, err = second.Parse(token)
	assert.Error(t, err)
}

func TestNewManager_Validation(t *testing.T) {
	_, err := NewManager(config.JWTConfig{AccessTokenTTL: time.Hour})
	assert.Error(t, err)

	_, err = NewManager(config.JWTConfig{SigningKey: "key"})
	assert.Error(t, err)
}
