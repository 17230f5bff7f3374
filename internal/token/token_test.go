package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	userID := uuid.New()
	signed, err := Sign("secret", time.Hour, userID, "Ani", "PRAMUNIAGA")
	require.NoError(t, err)

	claims, err := Parse("secret", signed)
	require.NoError(t, err)
	assert.Equal(t, "Ani", claims.Name)
	assert.Equal(t, "PRAMUNIAGA", claims.Role)

	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestParse_WrongSecret(t *testing.T) {
	signed, err := Sign("secret", time.Hour, uuid.New(), "Ani", "PRAMUNIAGA")
	require.NoError(t, err)

	_, err = Parse("other", signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	signed, err := Sign("secret", -time.Minute, uuid.New(), "Ani", "PRAMUNIAGA")
	require.NoError(t, err)

	_, err = Parse("secret", signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse("secret", "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
