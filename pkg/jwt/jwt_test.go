package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signClaims(t *testing.T, secret string, claims gojwt.Claims) string {
	t.Helper()
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyValidToken(t *testing.T) {
	m := NewManager(testSecret, 5*time.Minute)
	tokenStr, err := m.Issue("client-1", time.Minute)
	require.NoError(t, err)

	claims, err := m.Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "client-1", claims.Subject)
}

func TestVerifyNoSecretConfigured(t *testing.T) {
	m := NewManager("", 5*time.Minute)

	_, err := m.Verify("anything")
	assert.ErrorIs(t, err, ErrSecretMissing)
}

func TestVerifyWrongSecret(t *testing.T) {
	tokenStr := signClaims(t, "other-secret", gojwt.RegisteredClaims{
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute)),
	})

	m := NewManager(testSecret, 5*time.Minute)
	_, err := m.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyExpiredToken(t *testing.T) {
	tokenStr := signClaims(t, testSecret, gojwt.RegisteredClaims{
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})

	m := NewManager(testSecret, 5*time.Minute)
	_, err := m.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyExpTooFar(t *testing.T) {
	// Cryptographically valid, but the remaining lifetime exceeds the
	// ceiling this gateway enforces.
	tokenStr := signClaims(t, testSecret, gojwt.RegisteredClaims{
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	m := NewManager(testSecret, 5*time.Minute)
	_, err := m.Verify(tokenStr)
	assert.ErrorIs(t, err, ErrExpTooFar)
}

func TestVerifyNoExpSkipsCeiling(t *testing.T) {
	tokenStr := signClaims(t, testSecret, gojwt.RegisteredClaims{
		Subject: "no-exp",
	})

	m := NewManager(testSecret, 5*time.Minute)
	claims, err := m.Verify(tokenStr)
	require.NoError(t, err, "a token without exp must never be rejected by the ceiling check")
	assert.Equal(t, "no-exp", claims.Subject)
}
