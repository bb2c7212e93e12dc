package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeDay(t *testing.T, date, sleepAt, wakeAt string) DayLog {
	t.Helper()
	d, err := time.Parse(DateLayout, date)
	require.NoError(t, err)
	return DayLog{Date: d, Responses: map[string]Response{
		MetricActualSleep: {Metric: MetricActualSleep, Date: d, Type: TypeTime, TimeOfDay: sleepAt},
		MetricWakeTime:    {Metric: MetricWakeTime, Date: d, Type: TypeTime, TimeOfDay: wakeAt},
	}}
}

func TestSleepDuration(t *testing.T) {
	tests := []struct {
		name    string
		sleepAt string
		wakeAt  string
		want    float64
		ok      bool
	}{
		{name: "midnight_crossing", sleepAt: "23:00", wakeAt: "07:00", want: 8, ok: true},
		{name: "same_side_of_midnight", sleepAt: "01:30", wakeAt: "09:00", want: 7.5, ok: true},
		{name: "with_seconds", sleepAt: "22:30:00", wakeAt: "06:30:00", want: 8, ok: true},
		{name: "implausibly_short", sleepAt: "23:00", wakeAt: "23:30", ok: false},
		{name: "unparseable_time", sleepAt: "around eleven", wakeAt: "07:00", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SleepDuration(timeDay(t, "2026-03-01", tt.sleepAt, tt.wakeAt))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestBuildSeries_SkipsMissingAndDerivesDuration(t *testing.T) {
	h := History{
		day(t, "2026-03-01", map[string]float64{MetricSleepQuality: 4}),
		day(t, "2026-03-02", map[string]float64{MetricEnergy: 3}), // no sleep quality
		timeDay(t, "2026-03-03", "23:00", "06:00"),
	}

	quality := BuildSeries(h, MetricSleepQuality)
	require.Equal(t, 1, quality.Len())
	assert.Equal(t, []float64{4}, quality.Values())

	duration := BuildSeries(h, MetricSleepDuration)
	require.Equal(t, 1, duration.Len())
	assert.InDelta(t, 7.0, duration.Values()[0], 0.001)
}

func TestMean(t *testing.T) {
	m, ok := Mean([]float64{3, 4, 5})
	require.True(t, ok)
	assert.InDelta(t, 4.0, m, 0.001)

	_, ok = Mean(nil)
	assert.False(t, ok)
}
