package http

import (
	"time"

	"github.com/restwell/restwell/internal/insights/baseline"
)

// ErrorResponse is the standardized error payload.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse reports service liveness and dependency status.
type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Dependencies map[string]string `json:"dependencies"`
}

// BaselinesResponse is the payload of GET /v1/baselines.
type BaselinesResponse struct {
	Baselines    []baseline.Metric `json:"baselines"`
	TrackingDays int               `json:"tracking_days"`
	LastUpdated  time.Time         `json:"last_updated"`
}
