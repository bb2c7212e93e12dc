package domain

// Direction states whether larger values of a metric are desirable.
// Interpretation and impact signs flip on it.
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

// MetricSpec describes one trackable metric: identity, display info, scale
// bounds and direction. Presentation icons stay out of the engine.
type MetricSpec struct {
	Key       string
	Label     string
	Unit      string
	Min       float64
	Max       float64
	Direction Direction
	Derived   bool
}

// Survey metric keys. These match the keys the survey client submits.
const (
	MetricSleepQuality  = "sleepQuality"
	MetricEnergy        = "energy"
	MetricStress        = "stress"
	MetricSleepiness    = "sleepiness"
	MetricScreensOff    = "screensOff"
	MetricCaffeine      = "caffeine"
	MetricLastMeal      = "lastMeal"
	MetricSnooze        = "snooze"
	MetricWakeTime      = "wakeTime"
	MetricActualSleep   = "actualSleepTime"
	MetricPlannedSleep  = "plannedSleepTime"
	MetricSleepDuration = "sleepDuration"
)

// Metrics is the catalog of metrics the engine understands.
// sleepiness is recorded as alertness, so higher is better.
var Metrics = map[string]MetricSpec{
	MetricSleepQuality: {Key: MetricSleepQuality, Label: "Sleep quality", Unit: "out of 5", Min: 1, Max: 5, Direction: HigherIsBetter},
	MetricEnergy:       {Key: MetricEnergy, Label: "Morning energy", Unit: "out of 5", Min: 1, Max: 5, Direction: HigherIsBetter},
	MetricStress:       {Key: MetricStress, Label: "Evening stress", Unit: "out of 5", Min: 1, Max: 5, Direction: LowerIsBetter},
	MetricSleepiness:   {Key: MetricSleepiness, Label: "Morning alertness", Unit: "out of 5", Min: 1, Max: 5, Direction: HigherIsBetter},
	MetricScreensOff:   {Key: MetricScreensOff, Label: "Screens off before bed", Unit: "out of 5", Min: 1, Max: 5, Direction: HigherIsBetter},
	MetricCaffeine:     {Key: MetricCaffeine, Label: "Caffeine timing", Unit: "out of 5", Min: 1, Max: 5, Direction: HigherIsBetter},
	MetricLastMeal:     {Key: MetricLastMeal, Label: "Last meal timing", Unit: "out of 5", Min: 1, Max: 5, Direction: HigherIsBetter},
	MetricSnooze:       {Key: MetricSnooze, Label: "Snooze behavior", Unit: "out of 4", Min: 1, Max: 4, Direction: HigherIsBetter},
	MetricSleepDuration: {
		Key: MetricSleepDuration, Label: "Sleep duration", Unit: "hours",
		Min: 1, Max: 18, Direction: HigherIsBetter, Derived: true,
	},
}

// OrdinalScores maps enum answers to numeric scores (higher = better habit).
// These mirror the survey definitions and must stay in sync with the client.
var OrdinalScores = map[string]map[string]int{
	MetricLastMeal: {
		"3+hours": 5, "2-3hours": 4, "1-2hours": 3, "<1hour": 2, "justAte": 1,
	},
	MetricScreensOff: {
		"2+hours": 5, "1-2hours": 4, "30-60min": 3, "<30min": 2, "stillUsing": 1,
	},
	MetricCaffeine: {
		"none": 5, "before12": 4, "12-2pm": 3, "2-6pm": 2, "after6pm": 1,
	},
	MetricSnooze: {
		"noAlarm": 4, "no": 3, "1-2times": 2, "3+times": 1,
	},
}

// BaselineMetrics lists the metrics baselines are computed for, in the
// order they appear in responses.
var BaselineMetrics = []string{
	MetricSleepQuality,
	MetricEnergy,
	MetricStress,
	MetricSleepiness,
	MetricSleepDuration,
}

// Spec returns the catalog entry for a metric key.
func Spec(key string) (MetricSpec, bool) {
	s, ok := Metrics[key]
	return s, ok
}
