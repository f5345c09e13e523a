package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("64f0c9e2a1b2c3d4e5f60718", "driver@ecofreight.io", "driver", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f0c9e2a1b2c3d4e5f60718", claims.UserID)
	assert.Equal(t, "driver@ecofreight.io", claims.Email)
	assert.Equal(t, "driver", claims.Role)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateJWT("id", "x@y.z", "customer", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestSetSecretIgnoresEmpty(t *testing.T) {
	before := string(JwtSecret)
	SetSecret("")
	assert.Equal(t, before, string(JwtSecret))
}
