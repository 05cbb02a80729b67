// Package persistence stores and loads the flat data snapshot. The core
// never talks to files or databases directly; it hands a Snapshot to a
// Port and gets one back.
package persistence

import (
	"github.com/terraincognita07/cyclia/internal/models"
	"github.com/terraincognita07/cyclia/internal/services"
)

// Port is the pluggable persistence boundary. Load must tolerate a
// missing backing store by returning the default snapshot; Save must
// leave the previous on-disk state intact when it fails.
type Port interface {
	Load() (models.Snapshot, error)
	Save(snapshot models.Snapshot) error
}

// projectPeriods refreshes the write-only periods projection so external
// consumers always see intervals matching the stored levels. The
// projection is never read back.
func projectPeriods(snapshot models.Snapshot) models.Snapshot {
	snapshot.Periods = services.DeriveIntervals(snapshot.PeriodLevels)
	return snapshot
}

// emptySnapshot is the snapshot a missing backing store yields: no data,
// the adapter's configured default settings.
func emptySnapshot(defaults models.Settings) models.Snapshot {
	snapshot := models.DefaultSnapshot()
	snapshot.Settings = normalizeSettings(defaults)
	return snapshot
}

// normalize fills zero-valued collections and settings of a loaded
// snapshot, the same key backfilling the JSON format always had.
func normalize(snapshot models.Snapshot, defaults models.Settings) models.Snapshot {
	if snapshot.PeriodLevels == nil {
		snapshot.PeriodLevels = models.DayIntensity{}
	}
	if snapshot.SexEvents == nil {
		snapshot.SexEvents = []models.SexEvent{}
	}
	defaults = normalizeSettings(defaults)
	if snapshot.Settings.CycleLength <= 0 {
		snapshot.Settings.CycleLength = defaults.CycleLength
	}
	if snapshot.Settings.LutealPhase <= 0 {
		snapshot.Settings.LutealPhase = defaults.LutealPhase
	}
	if snapshot.Settings.Theme == "" {
		snapshot.Settings.Theme = defaults.Theme
	}
	snapshot.Periods = services.DeriveIntervals(snapshot.PeriodLevels)
	return snapshot
}

func normalizeSettings(settings models.Settings) models.Settings {
	if settings.CycleLength <= 0 {
		settings.CycleLength = models.DefaultCycleLength
	}
	if settings.LutealPhase <= 0 {
		settings.LutealPhase = models.DefaultLutealPhase
	}
	if settings.Theme == "" {
		settings.Theme = models.DefaultTheme
	}
	return settings
}
