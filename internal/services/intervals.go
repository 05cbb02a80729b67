package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/cyclia/internal/models"
)

// DeriveIntervals converts a per-day intensity mapping into the ordered
// list of maximal contiguous period intervals. The interval level is the
// intensity of the run's first day. Pure function: the same mapping always
// yields the same intervals, and malformed or non-positive entries are
// skipped.
func DeriveIntervals(levels models.DayIntensity) []models.PeriodInterval {
	days := make([]time.Time, 0, len(levels))
	for key, level := range levels {
		if level <= 0 {
			continue
		}
		day, err := ParseDay(key)
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	intervals := make([]models.PeriodInterval, 0)
	if len(days) == 0 {
		return intervals
	}

	start := days[0]
	prev := start
	for _, day := range days[1:] {
		if DaysBetween(prev, day) == 1 {
			prev = day
			continue
		}
		intervals = append(intervals, closeInterval(start, prev, levels))
		start = day
		prev = day
	}
	intervals = append(intervals, closeInterval(start, prev, levels))

	return intervals
}

func closeInterval(start, end time.Time, levels models.DayIntensity) models.PeriodInterval {
	return models.PeriodInterval{
		Start: FormatDay(start),
		End:   FormatDay(end),
		Level: levels[FormatDay(start)],
	}
}

// PeriodStarts extracts the parsed start dates of the given intervals,
// preserving their ascending order.
func PeriodStarts(intervals []models.PeriodInterval) []time.Time {
	starts := make([]time.Time, 0, len(intervals))
	for _, interval := range intervals {
		start, err := ParseDay(interval.Start)
		if err != nil {
			continue
		}
		starts = append(starts, start)
	}
	return starts
}
