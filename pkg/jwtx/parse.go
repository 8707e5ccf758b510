package jwtx

import "github.com/golang-jwt/jwt/v5"

// ParseUnverified decodes a token's claims WITHOUT checking the signature.
//
// This exists for exactly one flow: during refresh the access token is only
// a carrier for the subject email, and the real gate is the server-side
// refresh-token lookup. Never use the result of this function to authorize
// anything.
func ParseUnverified(tokenStr string) (Claims, error) {
	parser := jwt.NewParser()

	token, _, err := parser.ParseUnverified(tokenStr, &Claims{})
	if err != nil {
		return Claims{}, ErrMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, ErrMalformed
	}

	return *claims, nil
}
