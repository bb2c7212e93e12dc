// Package impact compares outcome averages between days where a behavior
// was favorable and days where it was not, producing "behavior -> outcome"
// statements with sample sizes and a confidence tier.
package impact

import (
	"fmt"
	"math"

	"github.com/restwell/restwell/internal/domain"
)

// Confidence tiers for a derived impact.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Thresholds holds the documented constants of confidence classification.
type Thresholds struct {
	// HighMinGroup and HighMinImpact gate the high tier: both groups must
	// reach the size and the absolute impact must be material.
	HighMinGroup  int     `yaml:"high_min_group"`
	HighMinImpact float64 `yaml:"high_min_impact"`
	// MediumMinGroup and MediumMinImpact gate the medium tier.
	MediumMinGroup  int     `yaml:"medium_min_group"`
	MediumMinImpact float64 `yaml:"medium_min_impact"`
}

// DefaultThresholds returns the product defaults: high at 3+3 days and a
// 0.5-point effect, medium at 2+2 days and 0.3 points.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighMinGroup:    3,
		HighMinImpact:   0.5,
		MediumMinGroup:  2,
		MediumMinImpact: 0.3,
	}
}

// Impact is one behavior/outcome comparison. Field names are part of the
// client contract and must not change. YourImpact is oriented so that
// positive always means the good behavior helps, regardless of whether the
// outcome metric is higher- or lower-is-better.
type Impact struct {
	Behavior       string  `json:"behavior"`
	BehaviorLabel  string  `json:"behavior_label"`
	Outcome        string  `json:"outcome"`
	OutcomeLabel   string  `json:"outcome_label"`
	WhenGood       float64 `json:"when_good"`
	WhenPoor       float64 `json:"when_poor"`
	YourImpact     float64 `json:"your_impact"`
	SampleSizeGood int     `json:"sample_size_good"`
	SampleSizePoor int     `json:"sample_size_poor"`
	Confidence     string  `json:"confidence"`
	Recommendation string  `json:"recommendation,omitempty"`
	LagDays        int     `json:"lag_days"`
}

// Analyzer partitions history per catalog pair and compares outcome means.
type Analyzer struct {
	catalog    []Pair
	thresholds Thresholds
}

// NewAnalyzer creates an analyzer over the given pair catalog.
func NewAnalyzer(catalog []Pair, thresholds Thresholds) *Analyzer {
	return &Analyzer{catalog: catalog, thresholds: thresholds}
}

// Analyze computes impacts for every catalog pair with at least one day in
// each group. Pairs with an empty group are omitted entirely rather than
// reported with a degenerate impact.
func (a *Analyzer) Analyze(history domain.History) []Impact {
	var out []Impact
	for _, pair := range a.catalog {
		if impact, ok := a.analyzePair(history, pair); ok {
			out = append(out, impact)
		}
	}
	return out
}

func (a *Analyzer) analyzePair(history domain.History, pair Pair) (Impact, bool) {
	var good, poor []float64
	for _, day := range history {
		behavior, ok := domain.DayValue(day, pair.Behavior)
		if !ok {
			continue
		}
		bucket := pair.Classify(behavior)
		if bucket == BucketSkip {
			continue
		}

		outcomeDay := day
		if pair.LagDays > 0 {
			next, found := history.FindDate(day.Date.AddDate(0, 0, pair.LagDays))
			if !found {
				continue
			}
			outcomeDay = next
		}
		outcome, ok := domain.DayValue(outcomeDay, pair.Outcome)
		if !ok {
			continue
		}

		if bucket == BucketGood {
			good = append(good, outcome)
		} else {
			poor = append(poor, outcome)
		}
	}

	meanGood, okGood := domain.Mean(good)
	meanPoor, okPoor := domain.Mean(poor)
	if !okGood || !okPoor {
		return Impact{}, false
	}
	meanGood = round2(meanGood)
	meanPoor = round2(meanPoor)

	delta := round2(meanGood - meanPoor)
	impactValue := delta
	if spec, ok := domain.Spec(pair.Outcome); ok && spec.Direction == domain.LowerIsBetter {
		impactValue = -delta
	}

	result := Impact{
		Behavior:       pair.Behavior,
		BehaviorLabel:  pair.BehaviorLabel,
		Outcome:        pair.Outcome,
		OutcomeLabel:   pair.OutcomeLabel,
		WhenGood:       meanGood,
		WhenPoor:       meanPoor,
		YourImpact:     impactValue,
		SampleSizeGood: len(good),
		SampleSizePoor: len(poor),
		LagDays:        pair.LagDays,
		Confidence:     a.classify(len(good), len(poor), impactValue),
	}
	if result.Confidence == ConfidenceHigh || result.Confidence == ConfidenceMedium {
		result.Recommendation = fmt.Sprintf(
			"%s makes a %+.2f point difference to your %s. %s",
			pair.BehaviorLabel, impactValue, pair.OutcomeLabel, pair.Action)
	}
	return result, true
}

// classify maps group sizes and effect size onto a confidence tier. Callers
// guarantee both groups are nonempty.
func (a *Analyzer) classify(nGood, nPoor int, impactValue float64) string {
	abs := math.Abs(impactValue)
	minGroup := nGood
	if nPoor < minGroup {
		minGroup = nPoor
	}
	switch {
	case minGroup >= a.thresholds.HighMinGroup && abs >= a.thresholds.HighMinImpact:
		return ConfidenceHigh
	case minGroup >= a.thresholds.MediumMinGroup && abs >= a.thresholds.MediumMinImpact:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
