package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for the service
type Config struct {
	Port     string
	DBDSN    string // empty selects the in-memory store
	GinMode  string
	LogLevel string
}

// Load reads configuration from the environment, with an optional .env file
func Load() *Config {
	// .env is a development convenience; absence is not an error
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		DBDSN:    getEnv("DB_DSN", ""),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
