// Package baseline computes personal per-metric baselines: the long-run
// average of a metric, the recent-window average, and how far the recent
// behavior deviates from the user's own norm.
package baseline

import (
	"math"

	"github.com/restwell/restwell/internal/domain"
)

// Settings holds the documented constants of the baseline computation.
type Settings struct {
	// RecentWindowDays is the trailing window compared against the baseline.
	RecentWindowDays int `yaml:"recent_window_days"`
	// MinSampleDays is the floor of distinct days with a value below which
	// a metric is excluded; a baseline from a single data point is noise.
	MinSampleDays int `yaml:"min_sample_days"`
	// SlightPct and SignificantPct bound the interpretation bands:
	// |dev%| < SlightPct is negligible, up to SignificantPct is "slightly",
	// beyond it "significantly".
	SlightPct      float64 `yaml:"slight_pct"`
	SignificantPct float64 `yaml:"significant_pct"`
}

// DefaultSettings returns the product defaults: 7-day window, 5-day floor,
// 5%/10% interpretation bands.
func DefaultSettings() Settings {
	return Settings{
		RecentWindowDays: 7,
		MinSampleDays:    5,
		SlightPct:        5,
		SignificantPct:   10,
	}
}

// Metric is one computed baseline. Field names are part of the client
// contract and must not change.
type Metric struct {
	Metric              string   `json:"metric"`
	Label               string   `json:"label"`
	Baseline            float64  `json:"baseline"`
	CurrentValue        float64  `json:"current_value"`
	Deviation           float64  `json:"deviation"`
	DeviationPercentage *float64 `json:"deviation_percentage"`
	Unit                string   `json:"unit"`
	Interpretation      string   `json:"interpretation"`
	SampleSize          int      `json:"sample_size"`
	RecentSampleSize    int      `json:"recent_sample_size"`
}

// Calculator derives baselines from a user's history.
type Calculator struct {
	settings Settings
}

// NewCalculator creates a baseline calculator with the given settings.
func NewCalculator(settings Settings) *Calculator {
	return &Calculator{settings: settings}
}

// Calculate computes a baseline for every catalog metric that clears the
// minimum-sample floor and has at least one reading in the recent window.
// Empty history yields an empty list, never an error.
func (c *Calculator) Calculate(history domain.History) []Metric {
	var out []Metric
	recent := history.Recent(c.settings.RecentWindowDays)

	for _, key := range domain.BaselineMetrics {
		spec, ok := domain.Spec(key)
		if !ok {
			continue
		}

		full := domain.BuildSeries(history, key)
		if full.Len() < c.settings.MinSampleDays {
			continue
		}
		window := domain.BuildSeries(recent, key)
		if window.Len() == 0 {
			// Nothing tracked recently: no current value to compare,
			// so the metric is omitted rather than defaulted.
			continue
		}

		base, _ := domain.Mean(full.Values())
		current, _ := domain.Mean(window.Values())
		base = round2(base)
		current = round2(current)
		deviation := round2(current - base)

		m := Metric{
			Metric:           key,
			Label:            spec.Label,
			Baseline:         base,
			CurrentValue:     current,
			Deviation:        deviation,
			Unit:             spec.Unit,
			SampleSize:       full.Len(),
			RecentSampleSize: window.Len(),
		}

		if base != 0 {
			pct := round1(deviation / base * 100)
			m.DeviationPercentage = &pct
			m.Interpretation = c.interpret(pct, spec.Direction)
		} else {
			m.Interpretation = "no usual level established yet"
		}

		out = append(out, m)
	}
	return out
}

// interpret maps a deviation percentage onto template text, adjusted for
// whether larger values of the metric are good or bad.
func (c *Calculator) interpret(pct float64, dir domain.Direction) string {
	abs := math.Abs(pct)
	if abs < c.settings.SlightPct {
		return "in line with your usual"
	}

	above := pct > 0
	side := "below"
	if above {
		side = "above"
	}
	degree := "slightly"
	if abs > c.settings.SignificantPct {
		degree = "significantly"
	}

	better := above == (dir == domain.HigherIsBetter)
	trend := "trending worse"
	if better {
		trend = "trending better"
	}
	return degree + " " + side + " your usual (" + trend + ")"
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
