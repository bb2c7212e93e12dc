package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restwell/restwell/internal/cache"
	"github.com/restwell/restwell/internal/domain"
	"github.com/restwell/restwell/internal/history"
	httpContracts "github.com/restwell/restwell/internal/http"
	"github.com/restwell/restwell/internal/insights"
	"github.com/restwell/restwell/internal/metrics"
)

// failingProvider simulates an unreachable history store.
type failingProvider struct{}

func (failingProvider) Fetch(context.Context, string, int) (domain.History, error) {
	return nil, errors.New("connection refused")
}

func sampleHistory(t *testing.T) domain.History {
	t.Helper()
	start, err := time.Parse(domain.DateLayout, "2026-04-01")
	require.NoError(t, err)

	var h domain.History
	for i := 0; i < 10; i++ {
		date := start.AddDate(0, 0, i)
		quality, screens := 4.0, 5.0
		if i >= 6 {
			quality, screens = 2.0, 1.0
		}
		h = append(h, domain.DayLog{Date: date, Responses: map[string]domain.Response{
			domain.MetricSleepQuality: {Metric: domain.MetricSleepQuality, Date: date, Type: domain.TypeNumeric, Numeric: &quality},
			domain.MetricScreensOff:   {Metric: domain.MetricScreensOff, Date: date, Type: domain.TypeNumeric, Numeric: &screens},
		}})
	}
	return h
}

func newTestHandlers(t *testing.T, provider history.Provider) *Handlers {
	t.Helper()
	reg := metrics.NewRegistryOn(prometheus.NewRegistry())
	engine := insights.NewEngine(insights.DefaultSettings())
	return NewHandlers(provider, engine, nil, reg, 30)
}

func TestInsights_Success(t *testing.T) {
	h := newTestHandlers(t, history.Static{History: sampleHistory(t)})

	req := httptest.NewRequest(http.MethodGet, "/v1/insights", nil)
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	h.Insights(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp insights.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.TrackingDays)
	assert.NotEmpty(t, resp.Baselines)
	assert.NotEmpty(t, resp.BehaviorImpacts)
	assert.NotEmpty(t, resp.Insights)
}

func TestInsights_CacheHitSkipsComputation(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := cache.NewInsightsCache(client, 5*time.Minute)

	stored := insights.NewEngine(insights.DefaultSettings()).Compute("user-1", sampleHistory(t), 30)
	raw, err := json.Marshal(stored)
	require.NoError(t, err)
	mock.ExpectGet("insights:user-1:30d").SetVal(string(raw))

	reg := metrics.NewRegistryOn(prometheus.NewRegistry())
	engine := insights.NewEngine(insights.DefaultSettings())
	// A failing provider proves the hit never reaches the store.
	h := NewHandlers(failingProvider{}, engine, c, reg, 30)

	req := httptest.NewRequest(http.MethodGet, "/v1/insights", nil)
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	h.Insights(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp insights.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, stored.TrackingDays, resp.TrackingDays)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsights_MissingUserHeader(t *testing.T) {
	h := newTestHandlers(t, history.Static{})

	req := httptest.NewRequest(http.MethodGet, "/v1/insights", nil)
	rec := httptest.NewRecorder()
	h.Insights(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp httpContracts.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "missing_user", errResp.Code)
	assert.Equal(t, "unknown", errResp.RequestID)
}

func TestInsights_HistoryUnavailable(t *testing.T) {
	h := newTestHandlers(t, failingProvider{})

	req := httptest.NewRequest(http.MethodGet, "/v1/insights", nil)
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	h.Insights(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var errResp httpContracts.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "history_unavailable", errResp.Code)
}

func TestInsights_RequestIDPropagatedToErrors(t *testing.T) {
	h := newTestHandlers(t, failingProvider{})

	req := httptest.NewRequest(http.MethodGet, "/v1/insights", nil)
	req.Header.Set("X-User-ID", "user-1")
	req = req.WithContext(context.WithValue(req.Context(), "request_id", "abc12345"))
	rec := httptest.NewRecorder()
	h.Insights(rec, req)

	var errResp httpContracts.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "abc12345", errResp.RequestID)
}

func TestBaselines_ProjectsBaselineView(t *testing.T) {
	h := newTestHandlers(t, history.Static{History: sampleHistory(t)})

	req := httptest.NewRequest(http.MethodGet, "/v1/baselines", nil)
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	h.Baselines(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp httpContracts.BaselinesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.TrackingDays)
	require.NotEmpty(t, resp.Baselines)
	assert.Equal(t, domain.MetricSleepQuality, resp.Baselines[0].Metric)

	// The narrative payload must not leak into the baselines view.
	var generic map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &generic))
	assert.NotContains(t, generic, "behavior_impacts")
	assert.NotContains(t, generic, "insights")
}

func TestEfficiency_Success(t *testing.T) {
	h := newTestHandlers(t, history.Static{History: sampleHistory(t)})

	req := httptest.NewRequest(http.MethodGet, "/v1/efficiency", nil)
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	h.Efficiency(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var score struct {
		Percentage int    `json:"percentage"`
		Color      string `json:"color"`
		Days       int    `json:"days"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &score))
	assert.Equal(t, 7, score.Days)
	assert.NotEmpty(t, score.Color)
	assert.GreaterOrEqual(t, score.Percentage, 0)
	assert.LessOrEqual(t, score.Percentage, 100)
}

func TestHealth(t *testing.T) {
	h := newTestHandlers(t, history.Static{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp httpContracts.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "configured", resp.Dependencies["history"])
	assert.Equal(t, "disabled", resp.Dependencies["cache"])
}

func TestNotFound(t *testing.T) {
	h := newTestHandlers(t, history.Static{})

	req := httptest.NewRequest(http.MethodGet, "/v1/nope", nil)
	rec := httptest.NewRecorder()
	h.NotFound(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var errResp httpContracts.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "endpoint_not_found", errResp.Code)
}

func TestWindowDays(t *testing.T) {
	h := newTestHandlers(t, history.Static{})

	tests := []struct {
		query string
		want  int
	}{
		{query: "", want: 30},
		{query: "days=7", want: 7},
		{query: "days=9000", want: maxHistoryDays},
		{query: "days=0", want: 30},
		{query: "days=-5", want: 30},
		{query: "days=abc", want: 30},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/v1/insights?"+tt.query, nil)
		assert.Equal(t, tt.want, h.windowDays(req, 30), tt.query)
	}
}
