package impact

import "github.com/restwell/restwell/internal/domain"

// Bucket classifies one day's behavior reading.
type Bucket int

const (
	// BucketSkip marks readings in the middle band, excluded from both groups.
	BucketSkip Bucket = iota
	BucketGood
	BucketPoor
)

// Pair associates a behavior metric with an outcome metric. The goodness
// cutoffs, lag and recommendation text are data so the catalog stays
// auditable and testable without touching the analyzer.
type Pair struct {
	Behavior      string
	BehaviorLabel string
	Outcome       string
	OutcomeLabel  string
	// LagDays fixes how a behavior date matches an outcome date: 0 reads
	// the outcome from the same log date, 1 from the following day.
	LagDays int
	// GoodMin and PoorBelow bound the partition: behavior >= GoodMin is a
	// good day, < PoorBelow a poor day, anything between is skipped.
	GoodMin   float64
	PoorBelow float64
	// Action is the behavioral suggestion appended to the recommendation.
	Action string
}

// Classify places a behavior reading into its group.
func (p Pair) Classify(v float64) Bucket {
	switch {
	case v >= p.GoodMin:
		return BucketGood
	case v < p.PoorBelow:
		return BucketPoor
	default:
		return BucketSkip
	}
}

// DefaultCatalog is the fixed behavior/outcome catalog. Evening behaviors
// and the following morning's outcomes share a log date, so those pairs use
// lag 0; screens-off vs next-morning alertness is the one true next-day pair.
func DefaultCatalog() []Pair {
	return []Pair{
		{
			Behavior: domain.MetricScreensOff, BehaviorLabel: "Screens off before bed",
			Outcome: domain.MetricSleepQuality, OutcomeLabel: "sleep quality",
			LagDays: 0, GoodMin: 4, PoorBelow: 3,
			Action: "Consider one earlier screen-off night to test tomorrow's sleep quality.",
		},
		{
			Behavior: domain.MetricCaffeine, BehaviorLabel: "Caffeine timing",
			Outcome: domain.MetricSleepQuality, OutcomeLabel: "sleep quality",
			LagDays: 0, GoodMin: 4, PoorBelow: 3,
			Action: "Try moving caffeine earlier and notice the next morning.",
		},
		{
			Behavior: domain.MetricLastMeal, BehaviorLabel: "Last meal timing",
			Outcome: domain.MetricSleepQuality, OutcomeLabel: "sleep quality",
			LagDays: 0, GoodMin: 4, PoorBelow: 3,
			Action: "Test finishing dinner earlier on a couple of nights this week.",
		},
		{
			Behavior: domain.MetricSnooze, BehaviorLabel: "Snooze behavior",
			Outcome: domain.MetricEnergy, OutcomeLabel: "morning energy",
			LagDays: 0, GoodMin: 3, PoorBelow: 3,
			Action: "Try one no-snooze morning this week and compare how you feel.",
		},
		{
			Behavior: domain.MetricSleepQuality, BehaviorLabel: "Sleep quality",
			Outcome: domain.MetricEnergy, OutcomeLabel: "morning energy",
			LagDays: 0, GoodMin: 4, PoorBelow: 3,
			Action: "Pick one bedtime routine step that helps your sleep quality tonight.",
		},
		{
			Behavior: domain.MetricSleepDuration, BehaviorLabel: "Sleep duration",
			Outcome: domain.MetricEnergy, OutcomeLabel: "morning energy",
			LagDays: 0, GoodMin: 7, PoorBelow: 6,
			Action: "Aim for a slightly longer sleep window on your next two nights.",
		},
		{
			Behavior: domain.MetricScreensOff, BehaviorLabel: "Screens off before bed",
			Outcome: domain.MetricSleepiness, OutcomeLabel: "next-morning alertness",
			LagDays: 1, GoodMin: 4, PoorBelow: 3,
			Action: "An earlier screen cutoff tends to show up in how alert you wake.",
		},
	}
}
