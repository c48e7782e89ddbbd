package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppliesDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Admin.Password != DefaultAdminPassword {
		t.Fatalf("expected default admin password, got %q", cfg.Admin.Password)
	}
	if cfg.Storage.Path != DefaultStoragePath || cfg.Quiz.ID != DefaultQuizID || cfg.Env != "local" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadReadsYAMLAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("env: dev\nserver:\n  port: \"9000\"\nadmin:\n  password: fromfile\nquiz:\n  ttl: 2m\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ADMIN_PASSWORD", "fromenv")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != "dev" || cfg.Server.Port != "9000" {
		t.Fatalf("expected yaml values, got %+v", cfg)
	}
	if cfg.Admin.Password != "fromenv" {
		t.Fatalf("expected env override, got %q", cfg.Admin.Password)
	}
	if got := TTLDuration(cfg.Quiz.TTL, time.Minute); got != 2*time.Minute {
		t.Fatalf("expected 2m ttl, got %v", got)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if got := TTLDuration("", time.Second); got != time.Second {
		t.Fatalf("expected fallback for empty, got %v", got)
	}
	if got := TTLDuration("soon", time.Second); got != time.Second {
		t.Fatalf("expected fallback for invalid, got %v", got)
	}
}
