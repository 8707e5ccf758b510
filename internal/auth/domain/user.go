package domain

import "time"

type User struct {
	ID            string
	Email         string // doubles as the username
	FirstName     string
	LastName      string
	PasswordHash  string // argon2 encoded
	SecurityStamp string // rotated when credentials change or a refresh is rejected
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Claim is a free-form (type, value) pair attached to a user and copied into
// access tokens at issue time.
type Claim struct {
	Type  string
	Value string
}

// ValidationError describes one reason a registration was rejected. Code is
// a stable machine-readable identifier, Description is safe to surface.
type ValidationError struct {
	Code        string
	Description string
}
