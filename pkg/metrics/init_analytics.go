package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalyticsMetrics() {
	r.AlgorithmRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialgraph_algorithm_runs_total",
			Help: "Total number of analytics runs",
		},
		[]string{"algorithm"},
	)

	r.AlgorithmDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialgraph_algorithm_duration_seconds",
			Help:    "Analytics run duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 10.0},
		},
		[]string{"algorithm"},
	)

	r.EigenvectorFallbacksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "socialgraph_eigenvector_fallbacks_total",
			Help: "Eigenvector runs that did not converge and returned uniform scores",
		},
	)

	r.CommunityFallbacksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "socialgraph_community_fallbacks_total",
			Help: "Community detections that fell back to connected components",
		},
	)

	r.CommunitiesDetected = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "socialgraph_communities_detected",
			Help: "Number of communities found by the last detection",
		},
	)

	r.LastModularity = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "socialgraph_last_modularity",
			Help: "Modularity of the last detected partition",
		},
	)
}
