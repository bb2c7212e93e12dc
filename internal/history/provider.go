// Package history supplies a user's ordered daily survey responses to the
// insight engine. The engine itself never performs I/O; everything it
// aggregates comes through a Provider.
package history

import (
	"context"

	"github.com/restwell/restwell/internal/domain"
)

// Provider fetches the trailing window of a user's survey history.
// Implementations must return the history ordered by ascending date and a
// nil error with an empty history for unknown users.
type Provider interface {
	Fetch(ctx context.Context, userID string, days int) (domain.History, error)
}

// Static serves a fixed history regardless of user. Used by the offline
// CLI path and in tests.
type Static struct {
	History domain.History
}

// Fetch returns the stored history.
func (s Static) Fetch(_ context.Context, _ string, _ int) (domain.History, error) {
	h := make(domain.History, len(s.History))
	copy(h, s.History)
	h.Sort()
	return h, nil
}
