package store

import (
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/terraincognita07/cyclia/internal/models"
	"github.com/terraincognita07/cyclia/internal/services"
)

// DataStore owns the canonical per-day intensity mapping, the sex event
// log and the settings, together with the in-memory undo/redo history.
// Period intervals are never stored: they are re-derived from the mapping
// on every read, so the two representations cannot drift apart.
//
// The store expects a single logical writer; it is not safe for
// concurrent use.
type DataStore struct {
	levels   models.DayIntensity
	sex      map[string]models.SexEvent
	settings models.Settings
	history  history
	average  services.AverageStrategy
}

// SettingsPatch carries a partial settings update; nil fields keep their
// current value.
type SettingsPatch struct {
	CycleLength *int    `json:"cycle_length"`
	LutealPhase *int    `json:"luteal_phase"`
	Theme       *string `json:"theme"`
}

// New builds a store from a loaded snapshot. The snapshot's Periods
// projection is ignored: intervals are derived from PeriodLevels alone.
// Undo/redo history always starts empty.
func New(snapshot models.Snapshot, average services.AverageStrategy) *DataStore {
	if average == nil {
		average = services.LoopAverage{}
	}

	store := &DataStore{
		levels:   models.DayIntensity{},
		sex:      make(map[string]models.SexEvent),
		settings: snapshot.Settings,
		average:  average,
	}
	if store.settings.CycleLength <= 0 {
		store.settings.CycleLength = models.DefaultCycleLength
	}
	if store.settings.LutealPhase <= 0 {
		store.settings.LutealPhase = models.DefaultLutealPhase
	}
	if store.settings.Theme == "" {
		store.settings.Theme = models.DefaultTheme
	}

	for day, level := range snapshot.PeriodLevels {
		if level > 0 && services.IsValidDay(day) {
			store.levels[day] = level
		}
	}
	for _, event := range snapshot.SexEvents {
		if services.IsValidDay(event.Date) {
			store.sex[event.Date] = event
		}
	}

	return store
}

// TogglePeriodDay cycles the day's intensity 0→1→2→3→0 and returns the
// new level. Level 0 removes the entry from the mapping.
func (d *DataStore) TogglePeriodDay(date string) (int, error) {
	if !services.IsValidDay(date) {
		return 0, ErrInvalidDate
	}

	d.history.record(d.capture())

	next := (d.levels[date] + 1) % 4
	if next == models.IntensityNone {
		delete(d.levels, date)
	} else {
		d.levels[date] = next
	}
	return next, nil
}

// AddSex records a sex event for the day, replacing the note of an
// existing one. One event per date.
func (d *DataStore) AddSex(date string, note string) error {
	if !services.IsValidDay(date) {
		return ErrInvalidDate
	}

	d.history.record(d.capture())
	d.sex[date] = models.SexEvent{Date: date, Note: note}
	return nil
}

// RemoveSex deletes the day's sex event. Removing a day without an event
// is a no-op that leaves the undo history untouched and returns false.
func (d *DataStore) RemoveSex(date string) (bool, error) {
	if !services.IsValidDay(date) {
		return false, ErrInvalidDate
	}
	if _, exists := d.sex[date]; !exists {
		return false, nil
	}

	d.history.record(d.capture())
	delete(d.sex, date)
	return true, nil
}

// ToggleSex adds the event when absent and removes it otherwise. Returns
// true when the day ends up with an event.
func (d *DataStore) ToggleSex(date string, note string) (bool, error) {
	if !services.IsValidDay(date) {
		return false, ErrInvalidDate
	}
	if _, exists := d.sex[date]; exists {
		_, err := d.RemoveSex(date)
		return false, err
	}
	return true, d.AddSex(date, note)
}

// UpdateSettings merges the patch into the current settings after
// validating the result. A *ValidationError leaves state and history
// unchanged.
func (d *DataStore) UpdateSettings(patch SettingsPatch) (models.Settings, error) {
	merged := d.settings
	if patch.CycleLength != nil {
		merged.CycleLength = *patch.CycleLength
	}
	if patch.LutealPhase != nil {
		merged.LutealPhase = *patch.LutealPhase
	}
	if patch.Theme != nil {
		merged.Theme = *patch.Theme
	}

	if err := validateSettings(merged); err != nil {
		return d.settings, &ValidationError{Err: err}
	}

	d.history.record(d.capture())
	d.settings = merged
	return d.settings, nil
}

func validateSettings(settings models.Settings) error {
	// Required rejects the zero value, Min the negatives: ozzo skips
	// threshold rules on empty values.
	return validation.ValidateStruct(&settings,
		validation.Field(&settings.CycleLength, validation.Required, validation.Min(1)),
		validation.Field(&settings.LutealPhase, validation.Required, validation.Min(1)),
	)
}

// Undo restores the snapshot taken before the most recent mutation.
// Returns false without touching state when the undo stack is empty.
func (d *DataStore) Undo() bool {
	restored, ok := d.history.stepBack(d.capture())
	if !ok {
		return false
	}
	d.apply(restored)
	return true
}

// Redo is the symmetric inverse of Undo.
func (d *DataStore) Redo() bool {
	restored, ok := d.history.stepForward(d.capture())
	if !ok {
		return false
	}
	d.apply(restored)
	return true
}

// UndoDepth and RedoDepth expose history sizes for the API surface.
func (d *DataStore) UndoDepth() int { return d.history.undoDepth() }
func (d *DataStore) RedoDepth() int { return d.history.redoDepth() }

// MigrateLegacy imports the old start+duration period records into the
// intensity mapping at light intensity. Days that already carry an entry
// are skipped, never overwritten, which makes a second run over the same
// input a counted no-op.
func (d *DataStore) MigrateLegacy(records []models.LegacyPeriod) (MigrationReport, error) {
	report := MigrationReport{}
	pending := make([]string, 0)
	seen := make(map[string]bool)

	for _, record := range records {
		start, err := services.ParseDay(record.StartDate)
		if err != nil {
			return MigrationReport{}, ErrInvalidDate
		}
		duration := record.DurationDays
		if duration <= 0 {
			duration = models.DefaultLegacyDuration
		}
		for offset := 0; offset < duration; offset++ {
			day := services.FormatDay(services.AddDays(start, offset))
			if seen[day] {
				continue
			}
			seen[day] = true
			if _, exists := d.levels[day]; exists {
				report.Skipped++
				continue
			}
			pending = append(pending, day)
		}
	}

	if len(pending) == 0 {
		return report, nil
	}

	d.history.record(d.capture())
	for _, day := range pending {
		d.levels[day] = models.IntensityLight
	}
	report.Imported = len(pending)
	return report, nil
}

// ClearAll resets the three collections to their defaults. Undoable like
// any other mutation.
func (d *DataStore) ClearAll() {
	d.history.record(d.capture())
	d.levels = models.DayIntensity{}
	d.sex = make(map[string]models.SexEvent)
	d.settings = models.DefaultSettings()
}

// Intervals derives the current period intervals. Always recomputed.
func (d *DataStore) Intervals() []models.PeriodInterval {
	return services.DeriveIntervals(d.levels)
}

// Forecast builds the prediction sequence for the given lookahead.
func (d *DataStore) Forecast(lookaheadMonths int) []services.CyclePrediction {
	return services.BuildForecast(d.Intervals(), d.settings.CycleLength, d.settings.LutealPhase, lookaheadMonths, d.average)
}

// DayStatusForMonth is the query surface consumed by the presentation
// layer: ISO date → {period, sex, ovulation, fertile} for the month.
func (d *DataStore) DayStatusForMonth(year int, month time.Month) map[string]services.DayStatus {
	return services.DayStatusForMonth(d.levels, d.SexEvents(), d.settings, year, month, d.average)
}

// Settings returns a copy of the current settings.
func (d *DataStore) Settings() models.Settings {
	return d.settings
}

// Levels returns a copy of the intensity mapping.
func (d *DataStore) Levels() models.DayIntensity {
	return d.levels.Clone()
}

// SexEvents lists the recorded events sorted by date.
func (d *DataStore) SexEvents() []models.SexEvent {
	events := make([]models.SexEvent, 0, len(d.sex))
	for _, event := range d.sex {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
	return events
}

// Snapshot assembles the serializable view of the store. Periods is a
// fresh derivation, written for external consumers and never read back.
func (d *DataStore) Snapshot() models.Snapshot {
	return models.Snapshot{
		PeriodLevels: d.levels.Clone(),
		SexEvents:    d.SexEvents(),
		Settings:     d.settings,
		Periods:      services.DeriveIntervals(d.levels),
	}
}

func (d *DataStore) capture() stateSnapshot {
	sex := make(map[string]models.SexEvent, len(d.sex))
	for date, event := range d.sex {
		sex[date] = event
	}
	return stateSnapshot{
		levels:   d.levels.Clone(),
		sex:      sex,
		settings: d.settings,
	}
}

func (d *DataStore) apply(snap stateSnapshot) {
	d.levels = snap.levels
	d.sex = snap.sex
	d.settings = snap.settings
}
