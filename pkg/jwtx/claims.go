package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access-token claims used across the service. The subject is
// the user's email, uid carries the opaque user id, and roles/custom are the
// authorization facts loaded from the credential store at issue time.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated user, duplicated from the subject so
	// resource servers don't have to know our subject convention.
	Email string `json:"email,omitempty"`

	// UID is the user's opaque store id.
	UID string `json:"uid,omitempty"`

	// Roles the user held when the token was issued, e.g. ["User"].
	Roles []string `json:"roles,omitempty"`

	// Custom carries the user's stored custom claims verbatim.
	Custom map[string]string `json:"custom,omitempty"`
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil // nothing to enforce
	}

	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}

	return ErrAudience
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
