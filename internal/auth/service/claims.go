package service

import (
	"github.com/hotellisting/hotellisting/internal/auth/domain"
	"github.com/hotellisting/hotellisting/pkg/jwtx"
)

// buildClaims assembles the identity claims for an access token. The subject
// is the user's email; roles and stored custom claims are copied in so
// resource servers can authorize without a store round trip.
func buildClaims(user domain.User, roles []string, userClaims []domain.Claim) jwtx.Claims {
	claims := jwtx.Claims{
		Email: user.Email,
		UID:   user.ID,
		Roles: roles,
	}
	claims.Subject = user.Email
	claims.ID = jwtx.NewJTI()

	if len(userClaims) > 0 {
		claims.Custom = make(map[string]string, len(userClaims))
		for _, c := range userClaims {
			claims.Custom[c.Type] = c.Value
		}
	}

	return claims
}
