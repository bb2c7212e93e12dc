package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	httpContracts "github.com/restwell/restwell/internal/http"

	"github.com/restwell/restwell/internal/cache"
	"github.com/restwell/restwell/internal/history"
	"github.com/restwell/restwell/internal/insights"
	"github.com/restwell/restwell/internal/metrics"
)

// maxHistoryDays caps the requestable fetch window.
const maxHistoryDays = 365

// Handlers manages all HTTP endpoint handlers.
type Handlers struct {
	provider    history.Provider
	engine      *insights.Engine
	cache       *cache.InsightsCache
	metrics     *metrics.Registry
	defaultDays int
}

// NewHandlers creates the handler set. cache may be nil to disable caching.
func NewHandlers(provider history.Provider, engine *insights.Engine, c *cache.InsightsCache, reg *metrics.Registry, defaultDays int) *Handlers {
	return &Handlers{
		provider:    provider,
		engine:      engine,
		cache:       c,
		metrics:     reg,
		defaultDays: defaultDays,
	}
}

// userID extracts the authenticated user from the gateway-set header.
func (h *Handlers) userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

// windowDays parses the days query parameter, clamped to a sane range.
func (h *Handlers) windowDays(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return fallback
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return fallback
	}
	if days > maxHistoryDays {
		return maxHistoryDays
	}
	return days
}

// writeJSON writes a JSON response with proper error handling.
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"json_encoding_failed"}`, http.StatusInternalServerError)
	}
}

// writeError writes a standardized error response.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	requestID, _ := r.Context().Value("request_id").(string)
	if requestID == "" {
		requestID = "unknown"
	}

	h.writeJSON(w, status, httpContracts.ErrorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		Code:      code,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
	})
}

// NotFound handles 404 responses.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.writeError(w, r, http.StatusNotFound, "endpoint_not_found",
		"The requested endpoint does not exist")
}
