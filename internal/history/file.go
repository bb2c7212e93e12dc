package history

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/restwell/restwell/internal/domain"
)

// fileLog mirrors the log export shape: one date, responses keyed by metric.
type fileLog struct {
	Date      string                  `json:"date"`
	Responses map[string]fileResponse `json:"responses"`
}

type fileResponse struct {
	Value        interface{} `json:"value"`
	ValueType    string      `json:"value_type"`
	ValueNumeric *float64    `json:"value_numeric"`
}

// LoadFile reads an exported history JSON file ({"logs": [...]}) into a
// History. Rows with unparseable dates are skipped; unparseable values stay
// as text and fall out of aggregates naturally.
func LoadFile(path string) (domain.History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var payload struct {
		Logs []fileLog `json:"logs"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}

	var h domain.History
	for _, l := range payload.Logs {
		date, err := time.Parse(domain.DateLayout, l.Date)
		if err != nil {
			continue
		}
		day := domain.DayLog{Date: date, Responses: make(map[string]domain.Response, len(l.Responses))}
		for metric, fr := range l.Responses {
			day.Responses[metric] = toResponse(metric, date, fr)
		}
		h = append(h, day)
	}
	h.Sort()
	return h, nil
}

func toResponse(metric string, date time.Time, fr fileResponse) domain.Response {
	r := domain.Response{
		Metric:  metric,
		Date:    date,
		Type:    domain.ValueType(fr.ValueType),
		Numeric: fr.ValueNumeric,
	}
	switch v := fr.Value.(type) {
	case float64:
		if r.Numeric == nil {
			r.Numeric = &v
		}
		if r.Type == "" {
			r.Type = domain.TypeNumeric
		}
	case bool:
		r.Bool = &v
		if r.Type == "" {
			r.Type = domain.TypeBool
		}
	case string:
		if r.Type == domain.TypeTime {
			r.TimeOfDay = v
		} else {
			r.Text = v
		}
		if r.Type == "" {
			r.Type = domain.TypeText
		}
	}
	return r
}
