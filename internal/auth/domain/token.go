package domain

import "time"

// AuthResponse is what a successful login or refresh returns.
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	UserID       string `json:"userId"`
	RefreshToken string `json:"refreshToken"`
}

// NamedToken models a stored server-side token record, keyed by
// (user, provider, name). Refresh tokens live here; only the fingerprint of
// the token is stored, never the token itself.
type NamedToken struct {
	ID            string
	UserID        string
	Provider      string
	Name          string
	TokenHash     string // deterministic fingerprint (base64url SHA-256)
	SecurityStamp string // user's stamp at issue time
	ExpiresAt     time.Time
	CreatedAt     time.Time
}
