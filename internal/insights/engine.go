// Package insights assembles the full insight response for one user:
// personal baselines, behavior-impact comparisons, ranked narrative
// insights with citations, and the tracking-day count.
package insights

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/restwell/restwell/internal/domain"
	"github.com/restwell/restwell/internal/insights/baseline"
	"github.com/restwell/restwell/internal/insights/citation"
	"github.com/restwell/restwell/internal/insights/impact"
)

// Settings bundles the engine's documented constants.
type Settings struct {
	Baseline   baseline.Settings `yaml:"baseline"`
	Thresholds impact.Thresholds `yaml:"impact"`
	// MaxInsights caps the narrative insight list.
	MaxInsights int `yaml:"max_insights"`
	// HighStressLevel and HighStressMinDays gate the stress tip: a day
	// counts when stress >= level, the tip fires at the day floor.
	HighStressLevel   float64 `yaml:"high_stress_level"`
	HighStressMinDays int     `yaml:"high_stress_min_days"`
}

// DefaultSettings returns the product defaults.
func DefaultSettings() Settings {
	return Settings{
		Baseline:          baseline.DefaultSettings(),
		Thresholds:        impact.DefaultThresholds(),
		MaxInsights:       4,
		HighStressLevel:   4,
		HighStressMinDays: 3,
	}
}

// Narrative is one free-text insight with its supporting citations.
type Narrative struct {
	Type       string              `json:"type"`
	Message    string              `json:"message"`
	Confidence string              `json:"confidence,omitempty"`
	Impact     string              `json:"impact,omitempty"`
	Score      float64             `json:"score"`
	Citations  []citation.Citation `json:"citations,omitempty"`
}

// Response is the engine's full output. Top-level field names are part of
// the client contract and must not change.
type Response struct {
	Baselines       []baseline.Metric `json:"baselines"`
	BehaviorImpacts []impact.Impact   `json:"behavior_impacts"`
	Insights        []Narrative       `json:"insights"`
	TrackingDays    int               `json:"tracking_days"`
	LastUpdated     time.Time         `json:"last_updated"`
}

// Engine is the stateless insight computation pipeline. Safe for
// concurrent use: every call operates only on its own inputs.
type Engine struct {
	settings Settings
	baseline *baseline.Calculator
	analyzer *impact.Analyzer
}

// NewEngine creates an engine over the default behavior/outcome catalog.
func NewEngine(settings Settings) *Engine {
	return NewEngineWithCatalog(settings, impact.DefaultCatalog())
}

// NewEngineWithCatalog creates an engine over an explicit pair catalog.
func NewEngineWithCatalog(settings Settings, catalog []impact.Pair) *Engine {
	return &Engine{
		settings: settings,
		baseline: baseline.NewCalculator(settings.Baseline),
		analyzer: impact.NewAnalyzer(catalog, settings.Thresholds),
	}
}

// Compute derives the full insight response from one user's history.
// windowDays is the fetch window the history covers; it only feeds
// citation metadata. Apart from LastUpdated the output is a pure function
// of the history.
func (e *Engine) Compute(userID string, history domain.History, windowDays int) Response {
	history.Sort()

	resp := Response{
		Baselines:       []baseline.Metric{},
		BehaviorImpacts: []impact.Impact{},
		Insights:        []Narrative{},
		TrackingDays:    history.TrackingDays(),
		LastUpdated:     time.Now().UTC(),
	}

	resp.Baselines = append(resp.Baselines, e.baseline.Calculate(history)...)
	resp.BehaviorImpacts = append(resp.BehaviorImpacts, e.analyzer.Analyze(history)...)

	builder := citation.NewBuilder(userID, windowDays, provenance(history))
	resp.Insights = e.narratives(resp.BehaviorImpacts, history, builder)

	log.Debug().
		Str("user_id", userID).
		Int("tracking_days", resp.TrackingDays).
		Int("baselines", len(resp.Baselines)).
		Int("behavior_impacts", len(resp.BehaviorImpacts)).
		Msg("insight response assembled")

	return resp
}

// narratives renders medium/high-confidence impacts as ranked pattern
// messages, appends the stress tip when warranted, and falls back to an
// encouragement tip when nothing else qualified.
func (e *Engine) narratives(impacts []impact.Impact, history domain.History, builder *citation.Builder) []Narrative {
	var out []Narrative
	for _, imp := range impacts {
		if imp.Confidence != impact.ConfidenceHigh && imp.Confidence != impact.ConfidenceMedium {
			continue
		}
		direction := "positive"
		if imp.YourImpact < 0 {
			direction = "negative"
		}
		minGroup := imp.SampleSizeGood
		if imp.SampleSizePoor < minGroup {
			minGroup = imp.SampleSizePoor
		}
		weight := math.Min(float64(minGroup)/5.0, 1.0)
		out = append(out, Narrative{
			Type: "pattern",
			Message: fmt.Sprintf("%s: your %s averages %.1f/5 on favorable days vs %.1f/5 otherwise.",
				imp.BehaviorLabel, imp.OutcomeLabel, imp.WhenGood, imp.WhenPoor),
			Confidence: imp.Confidence,
			Impact:     direction,
			Score:      round3(math.Abs(imp.YourImpact) * weight),
			Citations:  builder.Impact(imp),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	if tip, ok := e.stressTip(history); ok {
		out = append(out, tip)
	}
	if len(out) == 0 && history.TrackingDays() > 0 {
		out = append(out, Narrative{
			Type:    "tip",
			Message: "Keep completing your daily surveys to unlock personalized sleep and stress insights.",
		})
	}
	if len(out) > e.settings.MaxInsights {
		out = out[:e.settings.MaxInsights]
	}
	return out
}

// stressTip fires when enough days in the window reported high stress.
func (e *Engine) stressTip(history domain.History) (Narrative, bool) {
	days := history.TrackingDays()
	if days == 0 {
		return Narrative{}, false
	}
	high := 0
	for _, day := range history {
		if v, ok := day.Numeric(domain.MetricStress); ok && v >= e.settings.HighStressLevel {
			high++
		}
	}
	if high < e.settings.HighStressMinDays {
		return Narrative{}, false
	}
	pct := math.Round(float64(high) / float64(days) * 100)
	return Narrative{
		Type:       "tip",
		Message:    fmt.Sprintf("You reported high stress on %.0f%% of evenings. Consider a wind-down routine before bed.", pct),
		Confidence: impact.ConfidenceHigh,
		Impact:     "neutral",
	}, true
}

// provenance describes where the numbers came from, for citation tooltips.
func provenance(history domain.History) string {
	if len(history) == 0 {
		return "no responses in window"
	}
	first := history[0].Date.Format(domain.DateLayout)
	last := history[len(history)-1].Date.Format(domain.DateLayout)
	return fmt.Sprintf("responses in window %s..%s", first, last)
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
