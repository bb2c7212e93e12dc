// Package efficiency scores the last week of survey answers into a single
// 0-100 energy efficiency figure for the dashboard gauge.
package efficiency

import (
	"math"

	"github.com/restwell/restwell/internal/domain"
)

// Score is the computed efficiency result.
type Score struct {
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
	Days       int    `json:"days"`
}

// WindowDays is the scoring window.
const WindowDays = 7

// maxPointsPerDay is the theoretical daily maximum across all dimensions.
const maxPointsPerDay = 8.5

// Compute scores each day across sleep, energy, alertness, screen, caffeine,
// meal, stress and snooze dimensions, averages the days, and normalizes to
// a percentage. An empty window yields the neutral 50.
func Compute(history domain.History) Score {
	window := history.Recent(WindowDays)
	if len(window) == 0 {
		return Score{Percentage: 50, Color: colorFor(50)}
	}

	total := 0.0
	for _, day := range window {
		total += dayPoints(day)
	}
	avg := total / float64(len(window))
	pct := int(math.Round(avg / maxPointsPerDay * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return Score{Percentage: pct, Color: colorFor(pct), Days: len(window)}
}

// dayPoints scores one day. Each dimension maps its scale onto a fixed
// point budget; stress is inverted since lower stress is better.
func dayPoints(day domain.DayLog) float64 {
	points := 0.0
	if v, ok := day.Numeric(domain.MetricSleepQuality); ok {
		points += (v - 1) * 0.5 // 0..2
	}
	if v, ok := day.Numeric(domain.MetricEnergy); ok {
		points += (v - 1) * 0.375 // 0..1.5
	}
	if v, ok := day.Numeric(domain.MetricSleepiness); ok {
		points += (v - 1) * 0.25 // 0..1
	}
	if v, ok := day.Numeric(domain.MetricScreensOff); ok {
		points += (v - 1) * 0.25 // 0..1
	}
	if v, ok := day.Numeric(domain.MetricCaffeine); ok {
		points += (v - 1) * 0.25 // 0..1
	}
	if v, ok := day.Numeric(domain.MetricLastMeal); ok {
		points += (v - 1) * 0.125 // 0..0.5
	}
	if v, ok := day.Numeric(domain.MetricStress); ok {
		points += (5 - v) * 0.25 // 1->1, 5->0
	}
	if v, ok := day.Numeric(domain.MetricSnooze); ok {
		points += (v - 1) * (0.5 / 3) // 0..0.5 on the 1-4 scale
	}
	return points
}

func colorFor(pct int) string {
	switch {
	case pct >= 75:
		return "#27AE60"
	case pct >= 50:
		return "#F39C12"
	case pct >= 25:
		return "#E67E22"
	default:
		return "#E74C3C"
	}
}
