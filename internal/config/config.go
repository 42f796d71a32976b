package config

import (
	"os"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Remote aggregate store. Empty means run against the local store only
	// (development mode).
	RedisURL string

	// Local cache database path.
	CachePath string

	// Salt for deriving visitor tokens from client addresses.
	IdentitySalt string

	// Key gating the destructive admin surface. Empty disables it entirely.
	AdminKey string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Project catalog file.
	ProjectsFile string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:          getEnv("ENV", "development"),
		ServerAddr:   getEnv("SERVER_ADDR", ":3000"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:3000"),
		RedisURL:     getEnv("REDIS_URL", ""),
		CachePath:    getEnv("CACHE_PATH", "votepulse-cache.db"),
		IdentitySalt: getEnv("IDENTITY_SALT", "change-me-in-production"),
		AdminKey:     getEnv("ADMIN_KEY", ""),
		CORSOrigins:  getEnv("CORS_ORIGINS", ""),
		ProjectsFile: getEnv("PROJECTS_FILE", "projects.yaml"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
