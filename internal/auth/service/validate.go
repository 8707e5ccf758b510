package service

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/hotellisting/hotellisting/internal/auth/domain"
)

const minPasswordLength = 6

// validateRegistration checks a registration request and returns one
// ValidationError per failed rule. An empty slice means the request is
// acceptable (the store may still reject a duplicate email).
func validateRegistration(email, password string) []domain.ValidationError {
	var errs []domain.ValidationError

	email = strings.TrimSpace(email)
	switch {
	case email == "":
		errs = append(errs, domain.ValidationError{
			Code:        "InvalidEmail",
			Description: "Email is required.",
		})
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			errs = append(errs, domain.ValidationError{
				Code:        "InvalidEmail",
				Description: "Email '" + email + "' is invalid.",
			})
		}
	}

	if len(password) < minPasswordLength {
		errs = append(errs, domain.ValidationError{
			Code:        "PasswordTooShort",
			Description: "Passwords must be at least 6 characters.",
		})
	}

	var hasDigit, hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	if !hasDigit {
		errs = append(errs, domain.ValidationError{
			Code:        "PasswordRequiresDigit",
			Description: "Passwords must have at least one digit ('0'-'9').",
		})
	}
	if !hasUpper {
		errs = append(errs, domain.ValidationError{
			Code:        "PasswordRequiresUpper",
			Description: "Passwords must have at least one uppercase ('A'-'Z').",
		})
	}
	if !hasLower {
		errs = append(errs, domain.ValidationError{
			Code:        "PasswordRequiresLower",
			Description: "Passwords must have at least one lowercase ('a'-'z').",
		})
	}

	return errs
}
