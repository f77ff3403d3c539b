package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrSecretMissing is a server configuration error, not a caller fault.
	ErrSecretMissing = errors.New("signing secret not configured")
	// ErrExpTooFar rejects tokens whose remaining validity exceeds the
	// configured ceiling, bounding how long a leaked token stays usable
	// against this gateway regardless of the issuer's own expiry policy.
	ErrExpTooFar = errors.New("token exp too far in the future")
	ErrInvalid   = errors.New("invalid token")
)

type Manager struct {
	secret []byte
	maxTTL time.Duration
}

func NewManager(secret string, maxTTL time.Duration) *Manager {
	return &Manager{secret: []byte(secret), maxTTL: maxTTL}
}

// Verify parses and validates a bearer token. Signature and standard expiry
// are checked first; then, if the token carries an exp claim, its remaining
// lifetime must not exceed the configured ceiling. Tokens without exp skip
// the ceiling check.
func (m *Manager) Verify(tokenStr string) (*jwt.RegisteredClaims, error) {
	if len(m.secret) == 0 {
		return nil, ErrSecretMissing
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalid
	}
	if !token.Valid {
		return nil, ErrInvalid
	}

	if m.maxTTL > 0 && claims.ExpiresAt != nil {
		if time.Until(claims.ExpiresAt.Time) > m.maxTTL {
			return nil, ErrExpTooFar
		}
	}
	return claims, nil
}

// Issue creates a signed token for a subject, mainly for operator tooling and
// tests; production callers are expected to bring tokens from their issuer.
func (m *Manager) Issue(subject string, ttl time.Duration) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrSecretMissing
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}
