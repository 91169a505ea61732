package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_TOKEN_TTL_MINUTES", "")
	t.Setenv("AUTH_POLICY_DEFAULT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.Auth.TokenTTL(); got != 24*time.Hour {
		t.Errorf("TokenTTL() = %v, want 24h", got)
	}
	if cfg.Auth.BcryptCost != 11 {
		t.Errorf("BcryptCost = %d, want 11", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.PolicyDefault != "deny" {
		t.Errorf("PolicyDefault = %q, want deny", cfg.Auth.PolicyDefault)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:4200" {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("AUTH_TOKEN_TTL_MINUTES", "30")
	t.Setenv("AUTH_POLICY_DEFAULT", "PERMIT")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.Auth.TokenTTL(); got != 30*time.Minute {
		t.Errorf("TokenTTL() = %v, want 30m", got)
	}
	if cfg.Auth.PolicyDefault != "permit" {
		t.Errorf("PolicyDefault = %q, want permit", cfg.Auth.PolicyDefault)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App: AppConfig{Env: "production"},
			Auth: AuthConfig{
				JWTSecret:       "0123456789abcdef0123456789abcdef",
				TokenTTLMinutes: 60,
				PolicyDefault:   "deny",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "empty secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: true},
		{name: "short secret in production", mutate: func(c *Config) { c.Auth.JWTSecret = "short" }, wantErr: true},
		{name: "short secret in development", mutate: func(c *Config) {
			c.App.Env = "development"
			c.Auth.JWTSecret = "short"
		}},
		{name: "zero ttl", mutate: func(c *Config) { c.Auth.TokenTTLMinutes = 0 }, wantErr: true},
		{name: "unknown default", mutate: func(c *Config) { c.Auth.PolicyDefault = "maybe" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
