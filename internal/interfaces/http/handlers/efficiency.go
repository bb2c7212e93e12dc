package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/restwell/restwell/internal/insights/efficiency"
)

// Efficiency handles GET /v1/efficiency: the 7-day energy efficiency score
// for the dashboard gauge.
func (h *Handlers) Efficiency(w http.ResponseWriter, r *http.Request) {
	userID := h.userID(r)
	if userID == "" {
		h.writeError(w, r, http.StatusBadRequest, "missing_user", "X-User-ID header is required")
		return
	}

	hist, err := h.provider.Fetch(r.Context(), userID, efficiency.WindowDays)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("history fetch failed")
		h.writeError(w, r, http.StatusServiceUnavailable, "history_unavailable",
			"Survey history is temporarily unavailable")
		return
	}

	timer := h.metrics.StartStep("compute_efficiency")
	score := efficiency.Compute(hist)
	timer.Stop("success")

	h.writeJSON(w, http.StatusOK, score)
}
