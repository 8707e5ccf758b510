package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("AUTH_JWT_ISSUER", "hotellisting")
	t.Setenv("AUTH_JWT_AUDIENCE", "hotellisting-api")
	t.Setenv("AUTH_JWT_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("AUTH_JWT_DURATION_MINUTES", "15")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "hotellisting", cfg.JWTIssuer)
	assert.Equal(t, "hotellisting-api", cfg.JWTAudience)
	assert.Equal(t, 15*time.Minute, cfg.JWTDuration)

	assert.Equal(t, "auth.db", cfg.DatabaseFile)
	assert.Equal(t, "pepper", cfg.PepperFile)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	required := []string{
		"AUTH_JWT_ISSUER",
		"AUTH_JWT_AUDIENCE",
		"AUTH_JWT_KEY",
		"AUTH_JWT_DURATION_MINUTES",
	}

	for _, key := range required {
		t.Run(key, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(key, "")

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadConfig_BadDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTH_JWT_DURATION_MINUTES", "zero")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTH_REFRESH_TTL", "48h")
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_TIMEOUT", "2s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 48*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
}
