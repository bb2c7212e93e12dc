package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// Insights handles GET /v1/insights: the full assembled insight response
// for the requesting user, read through the cache when one is configured.
func (h *Handlers) Insights(w http.ResponseWriter, r *http.Request) {
	userID := h.userID(r)
	if userID == "" {
		h.writeError(w, r, http.StatusBadRequest, "missing_user", "X-User-ID header is required")
		return
	}
	days := h.windowDays(r, h.defaultDays)

	if h.cache != nil {
		cached, hit, err := h.cache.Get(r.Context(), userID, days)
		if err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("cache read failed, computing")
		} else if hit {
			h.metrics.RecordCacheHit("insights")
			h.writeJSON(w, http.StatusOK, cached)
			return
		}
		h.metrics.RecordCacheMiss("insights")
	}

	fetchTimer := h.metrics.StartStep("fetch_history")
	hist, err := h.provider.Fetch(r.Context(), userID, days)
	if err != nil {
		fetchTimer.Stop("error")
		h.metrics.InsightRequests.WithLabelValues("error").Inc()
		log.Error().Err(err).Str("user_id", userID).Msg("history fetch failed")
		h.writeError(w, r, http.StatusServiceUnavailable, "history_unavailable",
			"Survey history is temporarily unavailable")
		return
	}
	fetchTimer.Stop("success")

	computeTimer := h.metrics.StartStep("compute_insights")
	resp := h.engine.Compute(userID, hist, days)
	computeTimer.Stop("success")
	h.metrics.InsightRequests.WithLabelValues("success").Inc()

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), userID, days, resp); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("cache write failed")
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}
