package config

import (
	"strings"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/contactbook")
	t.Setenv("JWKS_URL", "https://issuer.example.com/.well-known/jwks.json")
	t.Setenv("JWT_ISSUER", "https://issuer.example.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("JWT_AUDIENCE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Audience != "" {
		t.Errorf("audience is optional, got %s", cfg.Audience)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_AUDIENCE", "contactbook-api")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.Audience != "contactbook-api" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadReportsAllMissing(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWKS_URL", "")
	t.Setenv("JWT_ISSUER", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing variables")
	}
	for _, name := range []string{"DATABASE_URL", "JWKS_URL", "JWT_ISSUER"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error must mention %s: %v", name, err)
		}
	}
}
