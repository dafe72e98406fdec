package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer         string // Required: issuer claim for session tokens
	BootstrapToken string // Optional: token required to perform bootstrap

	KeyStorageMode      string        // Optional: signing key storage mode (ephemeral, persistent) (default: ephemeral)
	SigningKeyFile      string        // Optional: path to the ed25519 seed file (persistent mode) (default: ./signing.key)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./posgate.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	SessionTTL          time.Duration // Optional: session lifetime (default: 12h)
	GeoTimeout          time.Duration // Optional: geolocation capture bound during login (default: 10s)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	SessionLogMaxAge     time.Duration // Session log retention (default: 90 days)
	SuperTokenMaxAge     time.Duration // Terminal super token retention (default: 24h)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:         getEnvOrDefault("POSGATE_ISSUER", "posgate"),
		BootstrapToken: os.Getenv("BOOTSTRAP_TOKEN"),

		KeyStorageMode: getEnvOrDefault("POSGATE_KEY_STORAGE_MODE", "ephemeral"),
		SigningKeyFile: getEnvOrDefault("POSGATE_SIGNING_KEY_FILE", "signing.key"),
		DatabaseFile:   getEnvOrDefault("POSGATE_DATABASE_FILE", "posgate.db"),
		PepperFile:     getEnvOrDefault("POSGATE_PEPPER_FILE", "pepper"),
		SessionTTL:     getEnvDurationOrDefault("POSGATE_SESSION_TTL", 12*time.Hour),
		GeoTimeout:     getEnvDurationOrDefault("POSGATE_GEO_TIMEOUT", 10*time.Second),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		SessionLogMaxAge:     getEnvDurationOrDefault("SESSION_LOG_MAX_AGE", 90*24*time.Hour),
		SuperTokenMaxAge:     getEnvDurationOrDefault("SUPER_TOKEN_MAX_AGE", 24*time.Hour),
	}

	return cfg
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
