package config

import (
	"os"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AppPort != "5000" {
		t.Fatalf("AppPort = %q, want 5000", cfg.AppPort)
	}
	if cfg.OAuthSuccessRedirect != "/dashboard" || cfg.OAuthFailureRedirect != "/" {
		t.Fatalf("redirect defaults = %q / %q", cfg.OAuthSuccessRedirect, cfg.OAuthFailureRedirect)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Fatalf("JWTSecret = %q", cfg.JWTSecret)
	}
}

func TestLoadRequiresSigningSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "placeholder")
	os.Unsetenv("SECRET_KEY")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error without SECRET_KEY")
	}
}

func TestLoadSplitsCORSOrigins(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}
