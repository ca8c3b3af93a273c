package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application settings, read once at startup from the
// environment and treated as immutable afterwards.
type Config struct {
	// Server
	Port string

	// Database
	DatabaseURL string

	// Token verification
	JWKSURL  string
	Issuer   string
	Audience string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first without overriding already-set variables.
// Missing required variables are reported together in one error.
func Load() (*Config, error) {
	// Absence of .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWKSURL:     os.Getenv("JWKS_URL"),
		Issuer:      os.Getenv("JWT_ISSUER"),
		Audience:    os.Getenv("JWT_AUDIENCE"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWKSURL == "" {
		missing = append(missing, "JWKS_URL")
	}
	if cfg.Issuer == "" {
		missing = append(missing, "JWT_ISSUER")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}
