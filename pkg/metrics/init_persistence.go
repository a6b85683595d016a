package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPersistenceMetrics() {
	r.PersistenceOperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialgraph_persistence_operations_total",
			Help: "Total number of load and save operations",
		},
		[]string{"operation", "format", "status"},
	)

	r.PersistenceLoadWarnings = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "socialgraph_persistence_load_warnings_total",
			Help: "Rows skipped while loading data files",
		},
	)

	r.PersistenceBytesWritten = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "socialgraph_persistence_bytes_written_total",
			Help: "Bytes written by save operations",
		},
		[]string{"format"},
	)
}
