package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	SecretKey string        // Required: HS256 signing secret; startup fails without it
	Issuer    string        // Issuer claim for tokens (default: shopd)
	AccessTTL time.Duration // Access token lifetime (default: 30m)

	DatabaseFile string // Path to SQLite database file (default: ./shop.db)

	// Optional first-run admin. Seeded only while the users table is empty.
	AdminUsername string
	AdminPassword string
	AdminEmail    string

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// ErrMissingSecretKey means SHOP_SECRET_KEY was not set. There is no
// default: a guessable signing key is equivalent to no authentication.
var ErrMissingSecretKey = errors.New("SHOP_SECRET_KEY is required")

func LoadConfig() (Config, error) {
	cfg := Config{
		SecretKey:           os.Getenv("SHOP_SECRET_KEY"),
		Issuer:              getEnvOrDefault("SHOP_ISSUER", "shopd"),
		AccessTTL:           getEnvDurationOrDefault("ACCESS_TOKEN_TTL", 30*time.Minute),
		DatabaseFile:        getEnvOrDefault("SHOP_DATABASE_FILE", "shop.db"),
		AdminUsername:       os.Getenv("SHOP_ADMIN_USERNAME"),
		AdminPassword:       os.Getenv("SHOP_ADMIN_PASSWORD"),
		AdminEmail:          os.Getenv("SHOP_ADMIN_EMAIL"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.SecretKey == "" {
		return Config{}, ErrMissingSecretKey
	}

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

	// Duration syntax first ("30m", "1h"), then bare integer minutes.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
