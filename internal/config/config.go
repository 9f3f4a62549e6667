// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Auth   AuthConfig
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port int
}

// DBConfig holds the SQLite settings.
type DBConfig struct {
	Path string
}

// AuthConfig holds token settings.
type AuthConfig struct {
	JWTSecret     string
	TokenDuration time.Duration
}

// Load reads configuration from environment variables, falling back to
// development defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		DB: DBConfig{
			Path: getEnv("DB_PATH", "./data/ledger.db"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
			TokenDuration: time.Duration(getEnvAsInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
