package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminToken_RoundTrip(t *testing.T) {
	token, err := NewAdminToken("test-secret", 7, "admin@rental.local", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, username, err := ParseAdminToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
	assert.Equal(t, "admin@rental.local", username)
}

func TestAdminToken_WrongSecret(t *testing.T) {
	token, err := NewAdminToken("test-secret", 7, "admin@rental.local", time.Hour)
	require.NoError(t, err)

	_, _, err = ParseAdminToken("other-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdminToken_Expired(t *testing.T) {
	token, err := NewAdminToken("test-secret", 7, "admin@rental.local", -time.Minute)
	require.NoError(t, err)

	_, _, err = ParseAdminToken("test-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdminToken_Garbage(t *testing.T) {
	_, _, err := ParseAdminToken("test-secret", "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
