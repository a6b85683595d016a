package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Graph Metrics
	GraphStudentsTotal       prometheus.Gauge
	GraphFriendshipsTotal    prometheus.Gauge
	GraphOperationsTotal     *prometheus.CounterVec
	GraphOperationDuration   *prometheus.HistogramVec
	GraphFriendshipsByWeight *prometheus.GaugeVec

	// Analytics Metrics
	AlgorithmRunsTotal        *prometheus.CounterVec
	AlgorithmDuration         *prometheus.HistogramVec
	EigenvectorFallbacksTotal prometheus.Counter
	CommunityFallbacksTotal   prometheus.Counter
	CommunitiesDetected       prometheus.Gauge
	LastModularity            prometheus.Gauge

	// Persistence Metrics
	PersistenceOperationsTotal *prometheus.CounterVec
	PersistenceLoadWarnings    prometheus.Counter
	PersistenceBytesWritten    *prometheus.CounterVec

	// System Metrics; runtime series come from the Go collector
	UptimeSeconds prometheus.Gauge
	StartTime     prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	// Initialize all metrics
	r.initHTTPMetrics()
	r.initGraphMetrics()
	r.initAnalyticsMetrics()
	r.initPersistenceMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
