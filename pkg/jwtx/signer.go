package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer turns claims into a signed token string. The signer owns the
// issuer, audience and lifetime so callers only provide identity claims.
type Signer interface {
	Sign(Claims) (string, error)
	Lifetime() time.Duration
}

// HS256Signer signs tokens with a shared symmetric secret. The same secret
// verifies, so it must never leave the services that trust each other.
type HS256Signer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewSignerHS256 builds an HS256 signer. An empty secret is a configuration
// fault and refused up front rather than producing forgeable tokens later.
func NewSignerHS256(secret []byte, issuer, audience string, ttl time.Duration) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty HS256 secret")
	}

	return &HS256Signer{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}, nil
}

// Sign stamps the registered issuer/audience/time claims and signs. The
// caller's identity claims (sub, jti, email, uid, roles, custom) pass
// through untouched.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	now := time.Now().UTC()

	claims.Issuer = s.issuer
	claims.Audience = jwt.ClaimStrings{s.audience}
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.NotBefore = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Lifetime reports the configured access-token lifetime.
func (s *HS256Signer) Lifetime() time.Duration { return s.ttl }
