// internal/auth/auth_test.go
package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calistaannelise/wallzy/internal/config"
)

func TestPasswordRoundtrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("s3cret-pass", hash))
	assert.False(t, VerifyPassword("wrong-pass", hash))
	assert.False(t, VerifyPassword("s3cret-pass", "not-a-hash"))
}

func TestPasswordLongInputTruncation(t *testing.T) {
	long := strings.Repeat("a", 100)
	hash, err := HashPassword(long)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(long, hash))
	// Bytes beyond 72 never reach bcrypt, so these agree.
	assert.True(t, VerifyPassword(long[:72]+"zzz", hash))
	assert.False(t, VerifyPassword(long[:71], hash))
}

func testTokenService() *TokenService {
	return NewTokenService(config.Config{
		JWTSecret:    "test-secret",
		JWTExpiresIn: time.Hour,
	})
}

func TestTokenRoundtrip(t *testing.T) {
	svc := testTokenService()

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)

	userID, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := testTokenService().GenerateToken(42)
	require.NoError(t, err)

	other := NewTokenService(config.Config{JWTSecret: "different", JWTExpiresIn: time.Hour})
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService(config.Config{JWTSecret: "test-secret", JWTExpiresIn: -time.Minute})

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := testTokenService().ParseToken("not.a.token")
	assert.Error(t, err)
}
