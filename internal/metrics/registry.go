// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog/log"
)

// cacheTypes enumerates the cache_type label values in use.
var cacheTypes = []string{"insights"}

// Registry holds all Prometheus metrics for the service.
type Registry struct {
	// RequestDuration tracks HTTP handler latency per route and status.
	RequestDuration *prometheus.HistogramVec

	// StepDuration tracks engine step latency (fetch, compute, cache).
	StepDuration *prometheus.HistogramVec

	// Cache performance metrics.
	CacheHitRatio prometheus.Gauge
	CacheHits     *prometheus.CounterVec
	CacheMisses   *prometheus.CounterVec

	// InsightRequests counts insight computations by outcome.
	InsightRequests *prometheus.CounterVec
}

// NewRegistry creates all service metrics and registers them with the
// default Prometheus registerer.
func NewRegistry() *Registry {
	return NewRegistryOn(prometheus.DefaultRegisterer)
}

// NewRegistryOn creates all service metrics on an explicit registerer.
// Tests use a fresh registerer to avoid duplicate registration.
func NewRegistryOn(reg prometheus.Registerer) *Registry {
	r := &Registry{
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "restwell_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
			},
			[]string{"route", "status"},
		),
		StepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "restwell_step_duration_seconds",
				Help:    "Duration of each insight pipeline step in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"step", "result"},
		),
		CacheHitRatio: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "restwell_cache_hit_ratio",
				Help: "Current cache hit ratio (0.0 to 1.0)",
			},
		),
		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restwell_cache_hits_total",
				Help: "Total number of cache hits by cache type",
			},
			[]string{"cache_type"},
		),
		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restwell_cache_misses_total",
				Help: "Total number of cache misses by cache type",
			},
			[]string{"cache_type"},
		),
		InsightRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restwell_insight_requests_total",
				Help: "Total insight computations by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(
		r.RequestDuration,
		r.StepDuration,
		r.CacheHitRatio,
		r.CacheHits,
		r.CacheMisses,
		r.InsightRequests,
	)

	log.Info().Msg("Prometheus metrics registry initialized")
	return r
}

// StepTimer tracks execution time for one pipeline step.
type StepTimer struct {
	registry *Registry
	step     string
	start    time.Time
}

// StartStep begins timing a pipeline step.
func (r *Registry) StartStep(step string) *StepTimer {
	return &StepTimer{registry: r, step: step, start: time.Now()}
}

// Stop completes the timing and records the observation.
func (t *StepTimer) Stop(result string) {
	duration := time.Since(t.start)
	t.registry.StepDuration.WithLabelValues(t.step, result).Observe(duration.Seconds())

	log.Debug().
		Str("step", t.step).
		Str("result", result).
		Dur("duration", duration).
		Msg("pipeline step completed")
}

// RecordRequest records a completed HTTP request.
func (r *Registry) RecordRequest(route, status string, duration time.Duration) {
	r.RequestDuration.WithLabelValues(route, status).Observe(duration.Seconds())
}

// RecordCacheHit records a cache hit for the given cache type.
func (r *Registry) RecordCacheHit(cacheType string) {
	r.CacheHits.WithLabelValues(cacheType).Inc()
	r.updateCacheHitRatio()
}

// RecordCacheMiss records a cache miss for the given cache type.
func (r *Registry) RecordCacheMiss(cacheType string) {
	r.CacheMisses.WithLabelValues(cacheType).Inc()
	r.updateCacheHitRatio()
}

// updateCacheHitRatio recomputes the hit ratio gauge from the counters.
func (r *Registry) updateCacheHitRatio() {
	var m io_prometheus_client.Metric
	totalHits := 0.0
	totalMisses := 0.0

	for _, cacheType := range cacheTypes {
		if counter, err := r.CacheHits.GetMetricWithLabelValues(cacheType); err == nil {
			if err := counter.Write(&m); err == nil {
				totalHits += m.GetCounter().GetValue()
			}
		}
		if counter, err := r.CacheMisses.GetMetricWithLabelValues(cacheType); err == nil {
			if err := counter.Write(&m); err == nil {
				totalMisses += m.GetCounter().GetValue()
			}
		}
	}

	if total := totalHits + totalMisses; total > 0 {
		r.CacheHitRatio.Set(totalHits / total)
	}
}

// Handler returns the Prometheus scrape handler.
func (r *Registry) Handler() http.Handler {
	return promhttp.Handler()
}
