package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("admin-1", 1, AccessToken, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, 1, claims.AccessLevel)
	assert.Equal(t, AccessToken, claims.TokenType)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("admin-1", 1, AccessToken, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	token, err := GenerateToken("admin-1", 1, AccessToken, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.Error(t, err)
}

func TestIsTokenValidChecksType(t *testing.T) {
	refresh, err := GenerateToken("admin-1", 2, RefreshToken, testSecret, time.Hour)
	require.NoError(t, err)

	assert.True(t, IsTokenValid(refresh, testSecret, RefreshToken))
	assert.False(t, IsTokenValid(refresh, testSecret, AccessToken))
}
