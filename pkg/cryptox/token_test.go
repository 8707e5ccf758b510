package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"128-bit token", TokenSize128},
		{"256-bit token", TokenSize256},
		{"custom size", 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			other, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEqual(t, token, other, "tokens should be unique")
		})
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestFingerprintToken(t *testing.T) {
	fp1a := FingerprintToken("token-one")
	fp1b := FingerprintToken("token-one")
	fp2 := FingerprintToken("token-two")

	require.Equal(t, fp1a, fp1b, "fingerprint should be deterministic")
	require.NotEqual(t, fp1a, fp2)
	require.Len(t, fp1a, 43, "base64url SHA-256 without padding")
}
