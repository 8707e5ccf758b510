package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validationCodes(email, password string) []string {
	verrs := validateRegistration(email, password)
	out := make([]string, len(verrs))
	for i, v := range verrs {
		out[i] = v.Code
	}
	return out
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     []string
	}{
		{
			name:     "valid",
			email:    "alice@example.com",
			password: "Passw0rd",
			want:     nil,
		},
		{
			name:     "missing email",
			email:    "",
			password: "Passw0rd",
			want:     []string{"InvalidEmail"},
		},
		{
			name:     "malformed email",
			email:    "not-an-email",
			password: "Passw0rd",
			want:     []string{"InvalidEmail"},
		},
		{
			name:     "too short",
			email:    "alice@example.com",
			password: "P0a",
			want:     []string{"PasswordTooShort"},
		},
		{
			name:     "no digit",
			email:    "alice@example.com",
			password: "Password",
			want:     []string{"PasswordRequiresDigit"},
		},
		{
			name:     "no uppercase",
			email:    "alice@example.com",
			password: "passw0rd",
			want:     []string{"PasswordRequiresUpper"},
		},
		{
			name:     "no lowercase",
			email:    "alice@example.com",
			password: "PASSW0RD",
			want:     []string{"PasswordRequiresLower"},
		},
		{
			name:     "everything wrong at once",
			email:    "nope",
			password: "abc",
			want:     []string{"InvalidEmail", "PasswordTooShort", "PasswordRequiresDigit", "PasswordRequiresUpper"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, validationCodes(tt.email, tt.password))
		})
	}
}
