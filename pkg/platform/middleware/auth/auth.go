// Package auth verifies bearer JWTs for endpoints that need caller identity.
// Tokens are HS256-signed with the shared service key; claims carry a
// space-separated scope list.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims plus the scope list this service checks.
type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// HasScope reports whether the space-separated scope claim contains want.
func (c *Claims) HasScope(want string) bool {
	for _, s := range strings.Fields(c.Scope) {
		if s == want {
			return true
		}
	}
	return false
}

// Verifier validates HS256 bearer tokens.
type Verifier struct {
	key []byte
}

// NewVerifier builds a verifier for the given signing key. Returns nil for an
// empty key so callers can treat JWT auth as disabled.
func NewVerifier(signingKey string) *Verifier {
	if signingKey == "" {
		return nil
	}
	return &Verifier{key: []byte(signingKey)}
}

// Verify parses and validates a raw token, returning its claims.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}
	return claims, nil
}

// Sign issues a token with the given subject and scope. Used by tests and the
// operator CLI; the service itself never mints tokens for clients.
func (v *Verifier) Sign(subject, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.key)
}
