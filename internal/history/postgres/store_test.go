package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restwell/restwell/internal/domain"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(sqlx.NewDb(db, "postgres"), 5*time.Second), mock
}

func responseColumns() []string {
	return []string{
		"metric", "local_date", "response_numeric",
		"response_text", "response_bool", "response_time", "response_timestamp",
	}
}

func TestFetch_GroupsRowsIntoDayLogs(t *testing.T) {
	store, mock := newMockStore(t)

	apr1 := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	apr2 := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(responseColumns()).
		AddRow("sleepQuality", apr1, 4.0, nil, nil, nil, nil).
		AddRow("screensOff", apr1, 4.0, "1hour", nil, nil, nil).
		AddRow("actualSleepTime", apr1, nil, nil, nil, "23:30", nil).
		AddRow("sleepQuality", apr2, 3.0, nil, nil, nil, nil).
		// A corrected answer recorded later the same day wins.
		AddRow("sleepQuality", apr2, 5.0, nil, nil, nil, nil)

	mock.ExpectQuery("SELECT q.key AS metric").
		WithArgs("user-1", sqlmock.AnyArg()).
		WillReturnRows(rows)

	h, err := store.Fetch(context.Background(), "user-1", 30)
	require.NoError(t, err)
	require.Len(t, h, 2)

	day1 := h[0]
	assert.Equal(t, apr1, day1.Date)
	require.Len(t, day1.Responses, 3)

	quality := day1.Responses["sleepQuality"]
	assert.Equal(t, domain.TypeNumeric, quality.Type)
	require.NotNil(t, quality.Numeric)
	assert.InDelta(t, 4.0, *quality.Numeric, 0.001)

	screens := day1.Responses["screensOff"]
	assert.Equal(t, domain.TypeOrdinal, screens.Type)
	assert.Equal(t, "1hour", screens.Text)

	sleepAt := day1.Responses["actualSleepTime"]
	assert.Equal(t, domain.TypeTime, sleepAt.Type)
	assert.Equal(t, "23:30", sleepAt.TimeOfDay)

	corrected := h[1].Responses["sleepQuality"]
	require.NotNil(t, corrected.Numeric)
	assert.InDelta(t, 5.0, *corrected.Numeric, 0.001)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetch_UnknownUserYieldsEmptyHistory(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT q.key AS metric").
		WithArgs("nobody", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(responseColumns()))

	h, err := store.Fetch(context.Background(), "nobody", 30)
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestFetch_QueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT q.key AS metric").
		WillReturnError(errors.New("relation does not exist"))

	_, err := store.Fetch(context.Background(), "user-1", 30)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch responses")
}

func TestToResponse_TypeDerivation(t *testing.T) {
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	ts := time.Date(2026, 4, 1, 7, 15, 0, 0, time.UTC)

	tests := []struct {
		name string
		row  responseRow
		want domain.ValueType
	}{
		{
			name: "timestamp beats time",
			row: responseRow{
				TimeOfDay: nullString("07:15"),
				Timestamp: nullTime(ts),
			},
			want: domain.TypeTimestamp,
		},
		{
			name: "time of day",
			row:  responseRow{TimeOfDay: nullString("23:30")},
			want: domain.TypeTime,
		},
		{
			name: "text plus numeric is ordinal",
			row:  responseRow{Text: nullString("1hour"), Numeric: nullFloat(4)},
			want: domain.TypeOrdinal,
		},
		{
			name: "bare numeric",
			row:  responseRow{Numeric: nullFloat(3)},
			want: domain.TypeNumeric,
		},
		{
			name: "bool",
			row:  responseRow{Bool: nullBool(true)},
			want: domain.TypeBool,
		},
		{
			name: "text fallback",
			row:  responseRow{Text: nullString("freeform note")},
			want: domain.TypeText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.row.Metric = "m"
			tt.row.LocalDate = date
			assert.Equal(t, tt.want, toResponse(tt.row).Type)
		})
	}
}

func nullString(s string) sql.NullString  { return sql.NullString{String: s, Valid: true} }
func nullFloat(f float64) sql.NullFloat64 { return sql.NullFloat64{Float64: f, Valid: true} }
func nullBool(b bool) sql.NullBool        { return sql.NullBool{Bool: b, Valid: true} }
func nullTime(t time.Time) sql.NullTime   { return sql.NullTime{Time: t, Valid: true} }
