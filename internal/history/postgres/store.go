// Package postgres implements the history provider against the survey
// responses table. It only reads; survey writes belong to the intake
// service.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/restwell/restwell/internal/domain"
	"github.com/restwell/restwell/internal/history"
)

var _ history.Provider = (*Store)(nil)

// Store reads survey responses from PostgreSQL.
type Store struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewStore creates a history store over an open connection pool.
func NewStore(db *sqlx.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(dsn string, timeout time.Duration) (*Store, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return NewStore(db, timeout), nil
}

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// responseRow is the scan target for one stored answer.
type responseRow struct {
	Metric    string          `db:"metric"`
	LocalDate time.Time       `db:"local_date"`
	Numeric   sql.NullFloat64 `db:"response_numeric"`
	Text      sql.NullString  `db:"response_text"`
	Bool      sql.NullBool    `db:"response_bool"`
	TimeOfDay sql.NullString  `db:"response_time"`
	Timestamp sql.NullTime    `db:"response_timestamp"`
}

// Fetch returns the user's responses for the trailing window, grouped into
// day logs ordered by ascending date. Unknown users yield an empty history.
func (s *Store) Fetch(ctx context.Context, userID string, days int) (domain.History, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	since := time.Now().UTC().AddDate(0, 0, -days).Format(domain.DateLayout)

	query := `
		SELECT q.key AS metric, r.local_date, r.response_numeric,
		       r.response_text, r.response_bool, r.response_time, r.response_timestamp
		FROM responses r
		JOIN questions q ON q.id = r.question_id
		WHERE r.user_id = $1 AND r.local_date >= $2
		ORDER BY r.local_date ASC, r.recorded_at ASC`

	var rows []responseRow
	if err := s.db.SelectContext(ctx, &rows, query, userID, since); err != nil {
		return nil, fmt.Errorf("failed to fetch responses: %w", err)
	}

	h := groupRows(rows)
	log.Debug().
		Str("user_id", userID).
		Int("days", days).
		Int("rows", len(rows)).
		Int("log_days", len(h)).
		Msg("history fetched")
	return h, nil
}

// groupRows folds raw response rows into per-date logs. Later rows for the
// same (date, metric) win, matching the store's last-write-wins semantics.
func groupRows(rows []responseRow) domain.History {
	byDate := make(map[string]*domain.DayLog)
	var order []string
	for _, row := range rows {
		key := row.LocalDate.Format(domain.DateLayout)
		day, ok := byDate[key]
		if !ok {
			day = &domain.DayLog{Date: row.LocalDate, Responses: map[string]domain.Response{}}
			byDate[key] = day
			order = append(order, key)
		}
		day.Responses[row.Metric] = toResponse(row)
	}

	h := make(domain.History, 0, len(order))
	for _, key := range order {
		h = append(h, *byDate[key])
	}
	h.Sort()
	return h
}

// toResponse converts a row into the domain type, deriving the value type
// the same way the intake service stores answers: timestamp beats time,
// text plus numeric marks an ordinal answer.
func toResponse(row responseRow) domain.Response {
	r := domain.Response{Metric: row.Metric, Date: row.LocalDate}
	if row.Numeric.Valid {
		v := row.Numeric.Float64
		r.Numeric = &v
	}
	if row.Text.Valid {
		r.Text = row.Text.String
	}
	if row.Bool.Valid {
		v := row.Bool.Bool
		r.Bool = &v
	}
	if row.TimeOfDay.Valid {
		r.TimeOfDay = row.TimeOfDay.String
	}
	if row.Timestamp.Valid {
		v := row.Timestamp.Time
		r.Timestamp = &v
	}

	switch {
	case r.Timestamp != nil:
		r.Type = domain.TypeTimestamp
	case r.TimeOfDay != "":
		r.Type = domain.TypeTime
	case r.Text != "" && r.Numeric != nil:
		r.Type = domain.TypeOrdinal
	case r.Numeric != nil:
		r.Type = domain.TypeNumeric
	case r.Bool != nil:
		r.Type = domain.TypeBool
	default:
		r.Type = domain.TypeText
	}
	return r
}
