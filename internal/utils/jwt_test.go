package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndValidateTokenPair(t *testing.T) {
	pair, err := GenerateTokenPair("user-123", "manager", "ops@example.com", testSecret)
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(JWTAccessTokenTTL.Seconds()), pair.ExpiresIn)

	claims, err := ValidateToken(pair.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, "ops@example.com", claims.Email)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	pair, err := GenerateTokenPair("user-123", "viewer", "a@b.com", testSecret)
	require.NoError(t, err)

	_, err = ValidateToken(pair.AccessToken, "different-secret")
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	assert.Error(t, err)
}

func TestRefreshAccessToken(t *testing.T) {
	pair, err := GenerateTokenPair("user-9", "admin", "admin@example.com", testSecret)
	require.NoError(t, err)

	fresh, err := RefreshAccessToken(pair.RefreshToken, testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(fresh.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-9", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestRefreshAccessTokenRejectsInvalid(t *testing.T) {
	_, err := RefreshAccessToken("bogus", testSecret)
	assert.Error(t, err)
}
