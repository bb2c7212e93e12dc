// Package citation packages derived statistics into structured, traceable
// records the presentation layer can render as tooltips. Builders are pure:
// the same inputs always produce the same citations, fact ids included.
package citation

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/restwell/restwell/internal/insights/baseline"
	"github.com/restwell/restwell/internal/insights/impact"
)

// Citation justifies one displayed statistic. Field names are part of the
// client contract and must not change.
type Citation struct {
	FactID           string   `json:"fact_id"`
	Label            string   `json:"label"`
	Value            float64  `json:"value"`
	Unit             string   `json:"unit"`
	WindowDays       int      `json:"window_days"`
	SampleSize       int      `json:"sample_size,omitempty"`
	NGood            int      `json:"n_good,omitempty"`
	NPoor            int      `json:"n_poor,omitempty"`
	Method           string   `json:"method"`
	Provenance       string   `json:"provenance"`
	SourceMetricKeys []string `json:"source_metric_keys"`
}

// Computation method names exposed in citations.
const (
	MethodBaselineMean   = "baseline:mean"
	MethodMeanComparison = "behavior-impact:mean-comparison"
)

// Builder constructs citations for one user and computation window.
type Builder struct {
	UserID     string
	WindowDays int
	Provenance string
}

// NewBuilder creates a citation builder scoped to a user and window.
func NewBuilder(userID string, windowDays int, provenance string) *Builder {
	return &Builder{UserID: userID, WindowDays: windowDays, Provenance: provenance}
}

// Baseline cites a computed baseline metric.
func (b *Builder) Baseline(m baseline.Metric) Citation {
	return Citation{
		FactID:           b.factID("baseline", m.Metric),
		Label:            fmt.Sprintf("%s: personal baseline", m.Label),
		Value:            m.Baseline,
		Unit:             m.Unit,
		WindowDays:       b.WindowDays,
		SampleSize:       m.SampleSize,
		Method:           MethodBaselineMean,
		Provenance:       b.Provenance,
		SourceMetricKeys: []string{m.Metric},
	}
}

// Impact cites a behavior/outcome comparison as three facts: the outcome
// mean on good days, the mean on poor days, and their difference.
func (b *Builder) Impact(i impact.Impact) []Citation {
	subject := i.Behavior + "_" + i.Outcome
	sources := []string{i.Behavior, i.Outcome}
	return []Citation{
		{
			FactID:           b.factID("impact_good", subject),
			Label:            fmt.Sprintf("%s: average %s on favorable days", i.BehaviorLabel, i.OutcomeLabel),
			Value:            i.WhenGood,
			Unit:             "out of 5",
			WindowDays:       b.WindowDays,
			SampleSize:       i.SampleSizeGood,
			Method:           MethodMeanComparison,
			Provenance:       b.Provenance,
			SourceMetricKeys: sources,
		},
		{
			FactID:           b.factID("impact_poor", subject),
			Label:            fmt.Sprintf("%s: average %s on unfavorable days", i.BehaviorLabel, i.OutcomeLabel),
			Value:            i.WhenPoor,
			Unit:             "out of 5",
			WindowDays:       b.WindowDays,
			SampleSize:       i.SampleSizePoor,
			Method:           MethodMeanComparison,
			Provenance:       b.Provenance,
			SourceMetricKeys: sources,
		},
		{
			FactID:           b.factID("impact_delta", subject),
			Label:            fmt.Sprintf("%s: difference in %s between favorable and unfavorable days", i.BehaviorLabel, i.OutcomeLabel),
			Value:            i.YourImpact,
			Unit:             "points",
			WindowDays:       b.WindowDays,
			NGood:            i.SampleSizeGood,
			NPoor:            i.SampleSizePoor,
			Method:           MethodMeanComparison,
			Provenance:       b.Provenance,
			SourceMetricKeys: sources,
		},
	}
}

// factID derives a stable id from user, fact kind, subject and window.
// Repeated requests over the same inputs always produce the same id.
func (b *Builder) factID(kind, subject string) string {
	sum := sha256.Sum256([]byte(b.UserID + "|" + kind + "|" + subject + "|" + fmt.Sprint(b.WindowDays)))
	return fmt.Sprintf("fact_%s_%s_%s_%dd", hex.EncodeToString(sum[:4]), kind, subject, b.WindowDays)
}
