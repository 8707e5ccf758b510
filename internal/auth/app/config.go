package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTIssuer   string        // Required: issuer claim for tokens
	JWTAudience string        // Required: audience claim for tokens
	JWTKey      string        // Required: HS256 signing secret
	JWTDuration time.Duration // Required: access token lifetime

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./auth.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	RefreshTTL          time.Duration // Optional: refresh token lifetime (default: 7 days)
	StoreTimeout        time.Duration // Optional: per-operation store deadline (default: 5s)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the configuration from the environment. The JWT settings
// have no sensible defaults; a missing one is a startup error so the process
// never runs with a guessable signing key.
func LoadConfig() (Config, error) {
	cfg := Config{
		JWTIssuer:   os.Getenv("AUTH_JWT_ISSUER"),
		JWTAudience: os.Getenv("AUTH_JWT_AUDIENCE"),
		JWTKey:      os.Getenv("AUTH_JWT_KEY"),

		DatabaseFile:        getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:          getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		RefreshTTL:          getEnvDurationOrDefault("AUTH_REFRESH_TTL", 7*24*time.Hour),
		StoreTimeout:        getEnvDurationOrDefault("STORE_TIMEOUT", 5*time.Second),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.JWTIssuer == "" {
		return Config{}, errors.New("config: AUTH_JWT_ISSUER is required")
	}
	if cfg.JWTAudience == "" {
		return Config{}, errors.New("config: AUTH_JWT_AUDIENCE is required")
	}
	if cfg.JWTKey == "" {
		return Config{}, errors.New("config: AUTH_JWT_KEY is required")
	}

	minutesStr := os.Getenv("AUTH_JWT_DURATION_MINUTES")
	if minutesStr == "" {
		return Config{}, errors.New("config: AUTH_JWT_DURATION_MINUTES is required")
	}
	minutes, err := strconv.Atoi(minutesStr)
	if err != nil || minutes <= 0 {
		return Config{}, errors.New("config: AUTH_JWT_DURATION_MINUTES must be a positive integer")
	}
	cfg.JWTDuration = time.Duration(minutes) * time.Minute

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
