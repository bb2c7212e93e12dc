package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restwell/restwell/internal/domain"
)

func writeHistoryFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeHistoryFile(t, `{
		"logs": [
			{
				"date": "2026-04-02",
				"responses": {
					"sleepQuality": {"value": 4, "value_type": "numeric"},
					"screensOff": {"value": "1hour", "value_type": "ordinal", "value_numeric": 4},
					"actualSleepTime": {"value": "23:30", "value_type": "time"},
					"nightWakeups": {"value": true, "value_type": "bool"}
				}
			},
			{
				"date": "2026-04-01",
				"responses": {
					"sleepQuality": {"value": 3}
				}
			},
			{
				"date": "not-a-date",
				"responses": {
					"sleepQuality": {"value": 5}
				}
			}
		]
	}`)

	h, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, h, 2, "unparseable dates are skipped")

	// Sorted ascending regardless of file order.
	assert.Equal(t, "2026-04-01", h[0].Date.Format(domain.DateLayout))
	assert.Equal(t, "2026-04-02", h[1].Date.Format(domain.DateLayout))

	day := h[1]
	quality, ok := day.Responses[domain.MetricSleepQuality]
	require.True(t, ok)
	assert.Equal(t, domain.TypeNumeric, quality.Type)
	require.NotNil(t, quality.Numeric)
	assert.InDelta(t, 4, *quality.Numeric, 0.001)

	screens := day.Responses[domain.MetricScreensOff]
	assert.Equal(t, domain.TypeOrdinal, screens.Type)
	assert.Equal(t, "1hour", screens.Text)
	require.NotNil(t, screens.Numeric)
	assert.InDelta(t, 4, *screens.Numeric, 0.001)

	sleepAt := day.Responses[domain.MetricActualSleep]
	assert.Equal(t, domain.TypeTime, sleepAt.Type)
	assert.Equal(t, "23:30", sleepAt.TimeOfDay)

	wakeups := day.Responses["nightWakeups"]
	require.NotNil(t, wakeups.Bool)
	assert.True(t, *wakeups.Bool)

	// Untyped values fall back on their JSON type.
	bare := h[0].Responses[domain.MetricSleepQuality]
	assert.Equal(t, domain.TypeNumeric, bare.Type)
	require.NotNil(t, bare.Numeric)
	assert.InDelta(t, 3, *bare.Numeric, 0.001)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	path := writeHistoryFile(t, "{not json")
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_EmptyLogs(t *testing.T) {
	path := writeHistoryFile(t, `{"logs": []}`)
	h, err := LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestStatic_SortsAndCopies(t *testing.T) {
	d1, err := time.Parse(domain.DateLayout, "2026-04-02")
	require.NoError(t, err)
	d2, err := time.Parse(domain.DateLayout, "2026-04-01")
	require.NoError(t, err)

	s := Static{History: domain.History{{Date: d1}, {Date: d2}}}
	h, err := s.Fetch(context.Background(), "anyone", 30)
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.True(t, h[0].Date.Before(h[1].Date))
	// The stored history is left untouched.
	assert.Equal(t, d1, s.History[0].Date)
}
