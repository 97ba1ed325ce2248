package auth

import (
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, duration time.Duration) *TokenService {
	t.Helper()

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	svc, err := NewTokenService(hex.EncodeToString(key), duration)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_RejectsBadKeys(t *testing.T) {
	_, err := NewTokenService("tooshort", 24*time.Hour)
	assert.Error(t, err)

	// Right length, not hex.
	notHex := make([]byte, 64)
	for i := range notHex {
		notHex[i] = 'z'
	}
	_, err = NewTokenService(string(notHex), 24*time.Hour)
	assert.Error(t, err)
}

func TestGenerateAndVerifyAccessToken(t *testing.T) {
	svc := newTestTokenService(t, 24*time.Hour)

	user := &domain.User{ID: 1, Username: "frodo", Email: "frodo@shire.me"}
	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "frodo@shire.me", claims.Email)
	assert.Equal(t, "frodo@shire.me", claims.Subject)
	assert.Equal(t, "frodo", claims.Username)
	assert.NotEmpty(t, claims.TokenID)

	// Expiry should be 24 hours out, give or take test runtime.
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.Expiration, time.Minute)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute)

	user := &domain.User{ID: 1, Username: "frodo", Email: "frodo@shire.me"}
	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestVerifyAccessToken_Malformed(t *testing.T) {
	svc := newTestTokenService(t, 24*time.Hour)

	_, err := svc.VerifyAccessToken("not-a-token")
	assert.Error(t, err)

	_, err = svc.VerifyAccessToken("")
	assert.Error(t, err)
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	svc := newTestTokenService(t, 24*time.Hour)
	other := newTestTokenService(t, 24*time.Hour)

	user := &domain.User{ID: 1, Username: "frodo", Email: "frodo@shire.me"}
	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	// Malformed hashes are a mismatch, never an error.
	ok, err := VerifyPassword("garbage", "anything")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifyPassword("$argon2id$v=19$m=bad$x$y", "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Limits(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)

	huge := make([]byte, 2048)
	for i := range huge {
		huge[i] = 'a'
	}
	_, err = HashPassword(string(huge))
	assert.Error(t, err)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("same password")
	require.NoError(t, err)
	h2, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "each hash should use a fresh salt")
}
