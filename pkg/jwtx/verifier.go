package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a token string and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrAudience    = errors.New("jwtx: audience mismatch")
)

// HS256Verifier validates tokens signed with the shared HS256 secret.
type HS256Verifier struct {
	secret   []byte
	issuer   string
	audience []string
}

// NewVerifierHS256 creates a verifier bound to an issuer and audience set.
func NewVerifierHS256(secret []byte, issuer string, audience []string) *HS256Verifier {
	return &HS256Verifier{secret: secret, issuer: issuer, audience: audience}
}

// Verify checks the signature and the standard claim requirements and
// returns the parsed claims. Failures map onto the package sentinels so
// callers can tell an expired token from a forged one.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, ErrMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.audience); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
