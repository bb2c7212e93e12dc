package domain

import (
	"sort"
	"time"
)

// ValueType identifies how a survey answer is stored.
type ValueType string

const (
	TypeNumeric   ValueType = "numeric"
	TypeText      ValueType = "text"
	TypeBool      ValueType = "bool"
	TypeTime      ValueType = "time"
	TypeTimestamp ValueType = "timestamp"
	// TypeOrdinal answers carry both the enum label and its numeric score.
	TypeOrdinal ValueType = "ordinal"
)

// DateLayout is the wire format for local survey dates.
const DateLayout = "2006-01-02"

// Response is a single survey answer: one user, one local date, one metric.
// Last write wins per (user, date, metric); the engine only reads these.
type Response struct {
	Metric    string     `json:"metric" db:"metric"`
	Date      time.Time  `json:"date" db:"local_date"`
	Type      ValueType  `json:"value_type"`
	Numeric   *float64   `json:"value_numeric,omitempty" db:"response_numeric"`
	Text      string     `json:"value_text,omitempty" db:"response_text"`
	Bool      *bool      `json:"value_bool,omitempty" db:"response_bool"`
	TimeOfDay string     `json:"value_time,omitempty" db:"response_time"`
	Timestamp *time.Time `json:"value_timestamp,omitempty" db:"response_timestamp"`
}

// NumericValue extracts the numeric reading for aggregation. Likert answers
// store it directly; ordinal answers fall back to the score table when the
// stored score is missing. Returns false for non-numeric or malformed
// answers, which excludes them from every aggregate.
func (r Response) NumericValue() (float64, bool) {
	if r.Numeric != nil {
		return *r.Numeric, true
	}
	if r.Text != "" {
		if scores, ok := OrdinalScores[r.Metric]; ok {
			if score, ok := scores[r.Text]; ok {
				return float64(score), true
			}
		}
	}
	return 0, false
}

// DayLog groups all of one user's responses for a single local date.
type DayLog struct {
	Date      time.Time           `json:"date"`
	Responses map[string]Response `json:"responses"`
}

// Numeric returns the numeric reading for one metric on this day.
func (d DayLog) Numeric(metric string) (float64, bool) {
	r, ok := d.Responses[metric]
	if !ok {
		return 0, false
	}
	return r.NumericValue()
}

// History is a user's survey history, ordered by ascending date.
type History []DayLog

// Sort orders the history by ascending date in place.
func (h History) Sort() {
	sort.Slice(h, func(i, j int) bool { return h[i].Date.Before(h[j].Date) })
}

// TrackingDays counts distinct dates with at least one response.
func (h History) TrackingDays() int {
	seen := make(map[string]struct{}, len(h))
	for _, d := range h {
		if len(d.Responses) == 0 {
			continue
		}
		seen[d.Date.Format(DateLayout)] = struct{}{}
	}
	return len(seen)
}

// LatestDate returns the most recent log date, or false for empty history.
// Windows are anchored here rather than at the wall clock so identical
// history always yields identical output.
func (h History) LatestDate() (time.Time, bool) {
	if len(h) == 0 {
		return time.Time{}, false
	}
	latest := h[0].Date
	for _, d := range h[1:] {
		if d.Date.After(latest) {
			latest = d.Date
		}
	}
	return latest, true
}

// Recent returns the logs falling inside the trailing window of n days,
// ending at the latest log date inclusive.
func (h History) Recent(n int) History {
	latest, ok := h.LatestDate()
	if !ok || n <= 0 {
		return nil
	}
	cutoff := latest.AddDate(0, 0, -(n - 1))
	var out History
	for _, d := range h {
		if !d.Date.Before(cutoff) {
			out = append(out, d)
		}
	}
	return out
}

// FindDate returns the log for an exact date, if present.
func (h History) FindDate(date time.Time) (DayLog, bool) {
	key := date.Format(DateLayout)
	for _, d := range h {
		if d.Date.Format(DateLayout) == key {
			return d, true
		}
	}
	return DayLog{}, false
}
