package services

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/terraincognita07/cyclia/internal/models"
)

const (
	fertileDaysBefore = 5
	fertileDaysAfter  = 1

	// A lookahead month is approximated as 31 days, matching the data
	// this tracker historically produced.
	lookaheadMonthDays = 31
)

// AverageStrategy computes the arithmetic mean of cycle gaps. Both
// implementations must produce identical results for identical input; the
// choice is a startup-time configuration knob, not a behavioral one.
type AverageStrategy interface {
	Name() string
	Mean(values []float64) float64
}

// LoopAverage computes the mean with plain iteration.
type LoopAverage struct{}

func (LoopAverage) Name() string { return "loop" }

func (LoopAverage) Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, value := range values {
		total += value
	}
	return total / float64(len(values))
}

// GonumAverage delegates to gonum's running-mean implementation.
type GonumAverage struct{}

func (GonumAverage) Name() string { return "gonum" }

func (GonumAverage) Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// AverageStrategyByName resolves the configured strategy name. Unknown
// names fall back to the plain loop.
func AverageStrategyByName(name string) AverageStrategy {
	if name == "gonum" {
		return GonumAverage{}
	}
	return LoopAverage{}
}

// CyclePrediction describes one predicted cycle: the period start it is
// anchored on plus the ovulation day and fertile window derived from it.
type CyclePrediction struct {
	PeriodStart  string `json:"predicted_period_start"`
	Ovulation    string `json:"ovulation_date"`
	FertileStart string `json:"fertile_start"`
	FertileEnd   string `json:"fertile_end"`
}

// EstimateCycleLength returns the rounded mean gap between consecutive
// period starts, or fallback when fewer than two intervals exist.
func EstimateCycleLength(intervals []models.PeriodInterval, fallback int, avg AverageStrategy) int {
	starts := PeriodStarts(intervals)
	if len(starts) < 2 {
		return fallback
	}
	if avg == nil {
		avg = LoopAverage{}
	}

	gaps := make([]float64, 0, len(starts)-1)
	for i := 1; i < len(starts); i++ {
		gaps = append(gaps, float64(DaysBetween(starts[i-1], starts[i])))
	}
	return int(math.Round(avg.Mean(gaps)))
}

// BuildForecast predicts ovulation days, fertile windows and future period
// starts from the recorded intervals. The first entry anchors on the most
// recent recorded start; later entries extrapolate by the cycle length for
// as long as the start stays within lookaheadMonths*31 days. An empty
// history yields an empty forecast: there is nothing to anchor to.
//
// ovulation = start + (cycle - luteal); fertile window = ovulation-5 ..
// ovulation+1. The luteal phase is assumed shorter than the cycle length;
// that precondition is documented, not enforced here.
func BuildForecast(intervals []models.PeriodInterval, cycleLength, lutealPhase, lookaheadMonths int, avg AverageStrategy) []CyclePrediction {
	starts := PeriodStarts(intervals)
	if len(starts) == 0 {
		return []CyclePrediction{}
	}
	if cycleLength <= 0 {
		cycleLength = models.DefaultCycleLength
	}
	if lutealPhase <= 0 {
		lutealPhase = models.DefaultLutealPhase
	}
	if lookaheadMonths < 0 {
		lookaheadMonths = 0
	}

	cycle := EstimateCycleLength(intervals, cycleLength, avg)
	if cycle <= 0 {
		cycle = cycleLength
	}

	anchor := starts[len(starts)-1]
	horizon := lookaheadMonths * lookaheadMonthDays

	forecast := make([]CyclePrediction, 0, lookaheadMonths+1)
	for cur := anchor; DaysBetween(anchor, cur) <= horizon; cur = AddDays(cur, cycle) {
		ovulation := AddDays(cur, cycle-lutealPhase)
		forecast = append(forecast, CyclePrediction{
			PeriodStart:  FormatDay(cur),
			Ovulation:    FormatDay(ovulation),
			FertileStart: FormatDay(AddDays(ovulation, -fertileDaysBefore)),
			FertileEnd:   FormatDay(AddDays(ovulation, fertileDaysAfter)),
		})
	}

	return forecast
}
