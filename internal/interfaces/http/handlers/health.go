package handlers

import (
	"net/http"
	"time"

	httpContracts "github.com/restwell/restwell/internal/http"
)

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	deps := map[string]string{
		"history": "configured",
		"cache":   "disabled",
	}
	if h.cache != nil {
		deps["cache"] = "enabled"
	}

	h.writeJSON(w, http.StatusOK, httpContracts.HealthResponse{
		Status:       "healthy",
		Timestamp:    time.Now().UTC(),
		Dependencies: deps,
	})
}
