package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "hotellisting-test"
	testAudience = "hotellisting-api"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestSigner(t *testing.T, ttl time.Duration) *HS256Signer {
	t.Helper()

	signer, err := NewSignerHS256(testSecret, testIssuer, testAudience, ttl)
	require.NoError(t, err)
	return signer
}

func TestNewSignerHS256_EmptySecret(t *testing.T) {
	_, err := NewSignerHS256(nil, testIssuer, testAudience, time.Minute)
	require.Error(t, err)
}

func TestHS256_RoundTrip(t *testing.T) {
	signer := newTestSigner(t, 10*time.Minute)
	verifier := NewVerifierHS256(testSecret, testIssuer, []string{testAudience})

	token, err := signer.Sign(Claims{
		Email: "user@example.com",
		UID:   "01HN0000000000000000000001",
		Roles: []string{"User"},
	})
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "01HN0000000000000000000001", claims.UID)
	assert.Equal(t, []string{"User"}, claims.Roles)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Contains(t, claims.Audience, testAudience)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestHS256_TamperedPayload(t *testing.T) {
	signer := newTestSigner(t, 10*time.Minute)
	verifier := NewVerifierHS256(testSecret, testIssuer, []string{testAudience})

	token, err := signer.Sign(Claims{Email: "user@example.com"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Swap the payload for another valid one; the signature no longer matches.
	other, err := signer.Sign(Claims{Email: "attacker@example.com"})
	require.NoError(t, err)
	tampered := parts[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]

	_, err = verifier.Verify(tampered)
	require.ErrorIs(t, err, ErrInvalidSig)

	// The unverified parse still decodes the forged claims, which is why it
	// must never be used as an authorization input.
	claims, err := ParseUnverified(tampered)
	require.NoError(t, err)
	assert.Equal(t, "attacker@example.com", claims.Email)
}

func TestHS256_WrongSecret(t *testing.T) {
	signer := newTestSigner(t, 10*time.Minute)
	verifier := NewVerifierHS256([]byte("another-secret-another-secret!!!"), testIssuer, []string{testAudience})

	token, err := signer.Sign(Claims{Email: "user@example.com"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestHS256_Expired(t *testing.T) {
	signer := newTestSigner(t, -time.Minute)
	verifier := NewVerifierHS256(testSecret, testIssuer, []string{testAudience})

	token, err := signer.Sign(Claims{Email: "user@example.com"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestHS256_IssuerMismatch(t *testing.T) {
	signer := newTestSigner(t, 10*time.Minute)
	verifier := NewVerifierHS256(testSecret, "someone-else", []string{testAudience})

	token, err := signer.Sign(Claims{Email: "user@example.com"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestHS256_AudienceMismatch(t *testing.T) {
	signer := newTestSigner(t, 10*time.Minute)
	verifier := NewVerifierHS256(testSecret, testIssuer, []string{"other-api"})

	token, err := signer.Sign(Claims{Email: "user@example.com"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrAudience)
}

func TestHS256_Malformed(t *testing.T) {
	verifier := NewVerifierHS256(testSecret, testIssuer, []string{testAudience})

	_, err := verifier.Verify("not.a.token")
	require.ErrorIs(t, err, ErrMalformed)

	_, err = ParseUnverified("garbage")
	require.ErrorIs(t, err, ErrMalformed)
}
