package models

const (
	IntensityNone   = 0
	IntensityLight  = 1
	IntensityMedium = 2
	IntensityHeavy  = 3

	DefaultCycleLength = 28
	DefaultLutealPhase = 14
	DefaultTheme       = "light"

	// DefaultLegacyDuration is assumed for legacy period records that
	// carry no duration of their own.
	DefaultLegacyDuration = 5
)

// DayIntensity maps an ISO day key (YYYY-MM-DD) to a bleeding intensity
// level 1..3. Days at level 0 are never stored.
type DayIntensity map[string]int

// Clone returns an independent copy of the mapping.
func (d DayIntensity) Clone() DayIntensity {
	cloned := make(DayIntensity, len(d))
	for day, level := range d {
		cloned[day] = level
	}
	return cloned
}

// PeriodInterval is a maximal contiguous run of recorded period days.
// Intervals are always derived from a DayIntensity mapping and never
// authored directly.
type PeriodInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Level int    `json:"level"`
}

type SexEvent struct {
	Date string `json:"date"`
	Note string `json:"note,omitempty"`
}

type Settings struct {
	CycleLength int    `json:"cycle_length"`
	LutealPhase int    `json:"luteal_phase"`
	Theme       string `json:"theme"`
}

func DefaultSettings() Settings {
	return Settings{
		CycleLength: DefaultCycleLength,
		LutealPhase: DefaultLutealPhase,
		Theme:       DefaultTheme,
	}
}

// Snapshot is the flat serialized form of the whole data set. Periods is
// a write-only projection: it is regenerated from PeriodLevels on every
// save and ignored on load.
type Snapshot struct {
	PeriodLevels DayIntensity     `json:"period_levels"`
	SexEvents    []SexEvent       `json:"sex_events"`
	Settings     Settings         `json:"settings"`
	Periods      []PeriodInterval `json:"periods"`
}

func DefaultSnapshot() Snapshot {
	return Snapshot{
		PeriodLevels: DayIntensity{},
		SexEvents:    []SexEvent{},
		Settings:     DefaultSettings(),
		Periods:      []PeriodInterval{},
	}
}

// LegacyPeriod is the old start+duration period record, accepted once by
// the legacy import.
type LegacyPeriod struct {
	StartDate    string `json:"start_date"`
	DurationDays int    `json:"duration_days"`
}
