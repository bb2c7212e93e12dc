package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	httpContracts "github.com/restwell/restwell/internal/http"
)

// baselineDefaultDays is the default fetch window for the baselines view.
// Longer than the insights default so the long-run average settles.
const baselineDefaultDays = 90

// Baselines handles GET /v1/baselines: the per-metric personal baselines
// without the narrative payload.
func (h *Handlers) Baselines(w http.ResponseWriter, r *http.Request) {
	userID := h.userID(r)
	if userID == "" {
		h.writeError(w, r, http.StatusBadRequest, "missing_user", "X-User-ID header is required")
		return
	}
	days := h.windowDays(r, baselineDefaultDays)

	hist, err := h.provider.Fetch(r.Context(), userID, days)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("history fetch failed")
		h.writeError(w, r, http.StatusServiceUnavailable, "history_unavailable",
			"Survey history is temporarily unavailable")
		return
	}

	timer := h.metrics.StartStep("compute_baselines")
	resp := h.engine.Compute(userID, hist, days)
	timer.Stop("success")

	h.writeJSON(w, http.StatusOK, httpContracts.BaselinesResponse{
		Baselines:    resp.Baselines,
		TrackingDays: resp.TrackingDays,
		LastUpdated:  resp.LastUpdated,
	})
}
