package services

import (
	"time"

	"github.com/terraincognita07/cyclia/internal/models"
)

const (
	TagPeriod    = "period"
	TagSex       = "sex"
	TagOvulation = "ovulation"
	TagFertile   = "fertile"

	// Months of forecast folded into a month view.
	statusLookaheadMonths = 6
)

// DayStatus is the per-day rendering state handed to the presentation
// layer. Level carries the recorded intensity for period days (0 otherwise).
type DayStatus struct {
	Period    bool `json:"period"`
	Sex       bool `json:"sex"`
	Ovulation bool `json:"ovulation"`
	Fertile   bool `json:"fertile"`
	Level     int  `json:"level,omitempty"`
}

func (s DayStatus) any() bool {
	return s.Period || s.Sex || s.Ovulation || s.Fertile
}

// Tags lists the set tags in a fixed order.
func (s DayStatus) Tags() []string {
	tags := make([]string, 0, 4)
	if s.Period {
		tags = append(tags, TagPeriod)
	}
	if s.Sex {
		tags = append(tags, TagSex)
	}
	if s.Ovulation {
		tags = append(tags, TagOvulation)
	}
	if s.Fertile {
		tags = append(tags, TagFertile)
	}
	return tags
}

// DayStatusForMonth maps every day of the given month that has anything to
// show onto its status. Period and sex days come straight from the recorded
// collections; ovulation and fertile days come from the forecast built over
// the derived intervals.
func DayStatusForMonth(levels models.DayIntensity, sexEvents []models.SexEvent, settings models.Settings, year int, month time.Month, avg AverageStrategy) map[string]DayStatus {
	intervals := DeriveIntervals(levels)
	forecast := BuildForecast(intervals, settings.CycleLength, settings.LutealPhase, statusLookaheadMonths, avg)

	ovulationDays := make(map[string]bool, len(forecast))
	type window struct{ start, end time.Time }
	fertileWindows := make([]window, 0, len(forecast))
	for _, prediction := range forecast {
		ovulationDays[prediction.Ovulation] = true
		start, err := ParseDay(prediction.FertileStart)
		if err != nil {
			continue
		}
		end, err := ParseDay(prediction.FertileEnd)
		if err != nil {
			continue
		}
		fertileWindows = append(fertileWindows, window{start: start, end: end})
	}

	sexByDay := make(map[string]bool, len(sexEvents))
	for _, event := range sexEvents {
		sexByDay[event.Date] = true
	}

	first, last := MonthBounds(year, month)
	status := make(map[string]DayStatus)
	for day := first; !day.After(last); day = AddDays(day, 1) {
		key := FormatDay(day)
		state := DayStatus{
			Period:    levels[key] > 0,
			Sex:       sexByDay[key],
			Ovulation: ovulationDays[key],
			Level:     levels[key],
		}
		for _, fw := range fertileWindows {
			if betweenInclusive(day, fw.start, fw.end) {
				state.Fertile = true
				break
			}
		}
		if state.any() {
			status[key] = state
		}
	}

	return status
}
