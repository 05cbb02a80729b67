package persistence

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/terraincognita07/cyclia/internal/models"
)

func newSQLiteFixture(t *testing.T) *SQLite {
	t.Helper()
	port, err := OpenSQLite(filepath.Join(t.TempDir(), "cyclia.db"), models.DefaultSettings())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return port
}

func TestSQLiteFreshDatabaseLoadsDefaults(t *testing.T) {
	t.Parallel()

	snapshot, err := newSQLiteFixture(t).Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(snapshot, models.DefaultSnapshot()) {
		t.Fatalf("expected default snapshot, got %+v", snapshot)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	port := newSQLiteFixture(t)
	saved := models.Snapshot{
		PeriodLevels: models.DayIntensity{
			"2024-01-01": 1,
			"2024-01-02": 2,
			"2024-01-05": 3,
		},
		SexEvents: []models.SexEvent{
			{Date: "2024-01-03", Note: "x"},
			{Date: "2024-01-07"},
		},
		Settings: models.Settings{CycleLength: 30, LutealPhase: 12, Theme: "dark"},
	}
	if err := port.Save(saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := port.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.PeriodLevels, saved.PeriodLevels) {
		t.Fatalf("period levels mismatch: %+v", loaded.PeriodLevels)
	}
	if !reflect.DeepEqual(loaded.SexEvents, saved.SexEvents) {
		t.Fatalf("sex events mismatch: %+v", loaded.SexEvents)
	}
	if loaded.Settings != saved.Settings {
		t.Fatalf("settings mismatch: %+v", loaded.Settings)
	}
	// Projection is regenerated on load, matching the levels.
	if len(loaded.Periods) != 2 {
		t.Fatalf("expected 2 derived intervals, got %+v", loaded.Periods)
	}
}

func TestSQLiteSaveReplacesPreviousSnapshot(t *testing.T) {
	t.Parallel()

	port := newSQLiteFixture(t)
	first := models.DefaultSnapshot()
	first.PeriodLevels["2024-01-01"] = 1
	first.SexEvents = append(first.SexEvents, models.SexEvent{Date: "2024-01-02"})
	if err := port.Save(first); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	second := models.DefaultSnapshot()
	second.PeriodLevels["2024-03-01"] = 2
	if err := port.Save(second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	loaded, err := port.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.PeriodLevels) != 1 || loaded.PeriodLevels["2024-03-01"] != 2 {
		t.Fatalf("stale period days survived: %+v", loaded.PeriodLevels)
	}
	if len(loaded.SexEvents) != 0 {
		t.Fatalf("stale sex events survived: %+v", loaded.SexEvents)
	}
}

func TestOpenBackendSelection(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	defaults := models.DefaultSettings()
	if _, err := OpenBackend("json", filepath.Join(dir, "d.json"), defaults); err != nil {
		t.Fatalf("json backend failed: %v", err)
	}
	if _, err := OpenBackend("sqlite", filepath.Join(dir, "d.db"), defaults); err != nil {
		t.Fatalf("sqlite backend failed: %v", err)
	}
	if _, err := OpenBackend("postgres", "x", defaults); err == nil {
		t.Fatal("expected an error for an unknown backend")
	}
}

func TestConfiguredDefaultsSeedFreshStores(t *testing.T) {
	t.Parallel()

	defaults := models.Settings{CycleLength: 31, LutealPhase: 13, Theme: "dark"}

	jsonSnapshot, err := NewJSONFile(filepath.Join(t.TempDir(), "missing.json"), defaults).Load()
	if err != nil {
		t.Fatalf("json load failed: %v", err)
	}
	if jsonSnapshot.Settings != defaults {
		t.Fatalf("json defaults not applied: %+v", jsonSnapshot.Settings)
	}

	sqlitePort, err := OpenSQLite(filepath.Join(t.TempDir(), "cyclia.db"), defaults)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqliteSnapshot, err := sqlitePort.Load()
	if err != nil {
		t.Fatalf("sqlite load failed: %v", err)
	}
	if sqliteSnapshot.Settings != defaults {
		t.Fatalf("sqlite defaults not applied: %+v", sqliteSnapshot.Settings)
	}
}
