package domain

import (
	"time"
)

// Point is one dated numeric observation.
type Point struct {
	Date  time.Time
	Value float64
}

// MetricSeries is the date-ordered numeric series for one metric. It is
// rebuilt from history on every computation and never persisted.
type MetricSeries struct {
	Metric string
	Points []Point
}

// Values returns the raw observations in date order.
func (s MetricSeries) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// Len returns the number of observations.
func (s MetricSeries) Len() int { return len(s.Points) }

// BuildSeries extracts the numeric series for one metric from history.
// The derived sleepDuration metric is computed on the fly; malformed or
// non-numeric answers are silently skipped.
func BuildSeries(h History, metric string) MetricSeries {
	series := MetricSeries{Metric: metric}
	for _, day := range h {
		v, ok := DayValue(day, metric)
		if !ok {
			continue
		}
		series.Points = append(series.Points, Point{Date: day.Date, Value: v})
	}
	return series
}

// DayValue returns the numeric reading of a metric for one day, resolving
// derived metrics.
func DayValue(day DayLog, metric string) (float64, bool) {
	if metric == MetricSleepDuration {
		return SleepDuration(day)
	}
	return day.Numeric(metric)
}

// SleepDuration derives hours slept from the actual-sleep and wake
// time-of-day answers, handling the midnight crossing. Durations outside
// the plausible 1-18h range are treated as malformed and dropped.
func SleepDuration(day DayLog) (float64, bool) {
	sleepAt, ok := timeOfDay(day, MetricActualSleep)
	if !ok {
		return 0, false
	}
	wakeAt, ok := timeOfDay(day, MetricWakeTime)
	if !ok {
		return 0, false
	}
	if !wakeAt.After(sleepAt) {
		wakeAt = wakeAt.Add(24 * time.Hour)
	}
	hours := wakeAt.Sub(sleepAt).Hours()
	if hours < 1 || hours > 18 {
		return 0, false
	}
	return hours, true
}

// timeOfDay parses a stored HH:MM or HH:MM:SS answer onto a reference day.
func timeOfDay(day DayLog, metric string) (time.Time, bool) {
	r, ok := day.Responses[metric]
	if !ok {
		return time.Time{}, false
	}
	raw := r.TimeOfDay
	if raw == "" {
		raw = r.Text
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(2000, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Mean returns the arithmetic mean, or false for an empty slice so callers
// never divide by zero.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}
