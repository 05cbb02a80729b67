package main

import (
	"path/filepath"
	"testing"

	"github.com/terraincognita07/cyclia/internal/config"
)

func TestOpenStoreSeedsDefaultsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "data.json")
	cfg.Defaults.CycleLength = 31
	cfg.Defaults.LutealPhase = 13
	cfg.Defaults.Theme = "dark"

	dataStore, port, err := openStore(cfg)
	if err != nil {
		t.Fatalf("open store failed: %v", err)
	}
	if port == nil {
		t.Fatal("expected a persistence port")
	}

	settings := dataStore.Settings()
	if settings.CycleLength != 31 || settings.LutealPhase != 13 || settings.Theme != "dark" {
		t.Fatalf("config defaults not applied to a fresh store: %+v", settings)
	}
}

func TestOpenStoreSQLiteBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = config.BackendSQLite
	cfg.Storage.Path = filepath.Join(t.TempDir(), "data.db")

	dataStore, port, err := openStore(cfg)
	if err != nil {
		t.Fatalf("open store failed: %v", err)
	}

	if _, err := dataStore.TogglePeriodDay("2024-05-01"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := port.Save(dataStore.Snapshot()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	reloaded, err := port.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if reloaded.PeriodLevels["2024-05-01"] != 1 {
		t.Fatalf("sqlite round trip lost the day: %+v", reloaded.PeriodLevels)
	}
}

func TestOpenStoreRejectsUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = "redis"

	if _, _, err := openStore(cfg); err == nil {
		t.Fatal("expected an error for an unknown backend")
	}
}
