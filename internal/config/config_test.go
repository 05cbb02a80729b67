package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("unexpected default port: %s", cfg.Server.Port)
	}
	if cfg.Storage.Backend != BackendJSON {
		t.Fatalf("unexpected default backend: %s", cfg.Storage.Backend)
	}
	if cfg.Defaults.CycleLength != 28 || cfg.Defaults.LutealPhase != 14 {
		t.Fatalf("unexpected cycle defaults: %+v", cfg.Defaults)
	}
	if cfg.Lock.Enabled() {
		t.Fatal("lock must be disabled by default")
	}
}

func TestLoadParsesYAMLOverDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
storage:
  backend: sqlite
  path: data/test.db
defaults:
  cycle_length: 30
prediction:
  average: loop
timezone: Europe/Berlin
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("port not applied: %s", cfg.Server.Port)
	}
	if cfg.Storage.Backend != BackendSQLite || cfg.Storage.Path != "data/test.db" {
		t.Fatalf("storage not applied: %+v", cfg.Storage)
	}
	if cfg.Defaults.CycleLength != 30 {
		t.Fatalf("cycle length not applied: %d", cfg.Defaults.CycleLength)
	}
	// Untouched keys keep their defaults.
	if cfg.Defaults.LutealPhase != 14 {
		t.Fatalf("luteal phase default lost: %d", cfg.Defaults.LutealPhase)
	}
	if cfg.Prediction.Average != AverageLoop {
		t.Fatalf("average strategy not applied: %s", cfg.Prediction.Average)
	}
}

func TestLoadExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("CYCLIA_TEST_PORT", "7777")
	path := writeConfig(t, `
server:
  port: "${CYCLIA_TEST_PORT}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "7777" {
		t.Fatalf("env expansion failed: %s", cfg.Server.Port)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: redis
  path: whatever
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown backend")
	}
}

func TestLoadRejectsLockWithoutSessionSecret(t *testing.T) {
	path := writeConfig(t, `
lock:
  passphrase_hash: "$2a$10$abcdefghijklmnopqrstuv"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for a lock without session secret")
	}
}

func TestLoadRejectsOversizedLookahead(t *testing.T) {
	path := writeConfig(t, `
defaults:
  lookahead_months: 120
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for an oversized lookahead")
	}
}

func TestLoadRejectsNonPositiveCycleDefaults(t *testing.T) {
	path := writeConfig(t, `
defaults:
  cycle_length: 0
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for non-positive cycle length")
	}
}
