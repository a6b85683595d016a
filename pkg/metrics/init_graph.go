package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphStudentsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "socialgraph_students_total",
			Help: "Total number of students in the graph",
		},
	)

	r.GraphFriendshipsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "socialgraph_friendships_total",
			Help: "Total number of friendships in the graph",
		},
	)

	r.GraphOperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialgraph_graph_operations_total",
			Help: "Total number of graph mutations and lookups",
		},
		[]string{"operation", "status"},
	)

	r.GraphOperationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "socialgraph_graph_operation_duration_seconds",
			Help:    "Graph operation duration in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		},
		[]string{"operation"},
	)

	r.GraphFriendshipsByWeight = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "socialgraph_friendships_by_weight",
			Help: "Number of friendships per tie strength",
		},
		[]string{"weight"},
	)
}
