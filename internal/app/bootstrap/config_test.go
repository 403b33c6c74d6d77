package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.HTTPPort != 8080 || cfg.GRPCPort != 9090 {
		t.Fatalf("unexpected ports %d/%d", cfg.HTTPPort, cfg.GRPCPort)
	}
	if !cfg.OTPEnabled || !cfg.MediumHardGateEnabled {
		t.Fatalf("feature flags should default on")
	}
	if cfg.OTPTTL != 10*time.Minute {
		t.Fatalf("unexpected otp ttl %s", cfg.OTPTTL)
	}
	if cfg.IdentityMode != "firebase" {
		t.Fatalf("unexpected identity mode %q", cfg.IdentityMode)
	}
	if cfg.LeaderboardLimit != 50 {
		t.Fatalf("unexpected leaderboard limit %d", cfg.LeaderboardLimit)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
service:
  id: training-staging
  http_port: 9000
otp:
  enabled: false
  ttl_minutes: 5
gate:
  medium_hard_enabled: false
cors:
  allowed_origins:
    - https://staging.example.com
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.ServiceID != "training-staging" {
		t.Fatalf("unexpected service id %q", cfg.ServiceID)
	}
	if cfg.HTTPPort != 9000 {
		t.Fatalf("unexpected http port %d", cfg.HTTPPort)
	}
	if cfg.OTPEnabled {
		t.Fatalf("otp should be disabled by file")
	}
	if cfg.OTPTTL != 5*time.Minute {
		t.Fatalf("unexpected ttl %s", cfg.OTPTTL)
	}
	if cfg.MediumHardGateEnabled {
		t.Fatalf("gate should be disabled by file")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://staging.example.com" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("service:\n  http_port: 9000\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("HTTP_PORT", "7000")
	t.Setenv("OTP_ENABLED", "false")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("OTP_RATE_LIMIT_THRESHOLD", "9")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.HTTPPort != 7000 {
		t.Fatalf("env should beat file, got port %d", cfg.HTTPPort)
	}
	if cfg.OTPEnabled {
		t.Fatalf("env should disable otp")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.OTPRateLimitThreshold != 9 {
		t.Fatalf("unexpected threshold %d", cfg.OTPRateLimitThreshold)
	}
}

func TestLoadConfigLocalIdentityNeedsSecret(t *testing.T) {
	t.Setenv("IDENTITY_MODE", "local")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for local mode without secret")
	}

	t.Setenv("LOCAL_JWT_SECRET", "dev-secret")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.IdentityMode != "local" || cfg.LocalJWTSecret != "dev-secret" {
		t.Fatalf("unexpected identity config %q/%q", cfg.IdentityMode, cfg.LocalJWTSecret)
	}
}

func TestLoadConfigRejectsUnknownIdentityMode(t *testing.T) {
	t.Setenv("IDENTITY_MODE", "ldap")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for unknown identity mode")
	}
}
