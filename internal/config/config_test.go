package config

import (
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_ENV", "nonexistent")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 4000 {
		t.Errorf("port = %d, want 4000", cfg.Port)
	}
	if cfg.Mode != "release" {
		t.Errorf("mode = %q, want release", cfg.Mode)
	}
	if cfg.MongoDB != "uptask" {
		t.Errorf("mongo_db = %q, want uptask", cfg.MongoDB)
	}
	if cfg.PingPeriod != 54*time.Second {
		t.Errorf("ping_period = %v, want 54s", cfg.PingPeriod)
	}
	if cfg.ReadLimit != 32768 {
		t.Errorf("read_limit = %d, want 32768", cfg.ReadLimit)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CONFIG_ENV", "nonexistent")
	t.Setenv("UPTASK_PORT", "9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9999 {
		t.Errorf("port = %d, want env override 9999", cfg.Port)
	}
}
