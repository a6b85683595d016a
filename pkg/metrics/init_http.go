package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP series are labelled by method, route path and response status.
var httpLabels = []string{"method", "path", "status"}

func (r *Registry) initHTTPMetrics() {
	f := promauto.With(r.registry)

	r.HTTPRequestsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: "socialgraph",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route and status",
	}, httpLabels)

	r.HTTPRequestDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "socialgraph",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time to serve an HTTP request",
		Buckets:   []float64{0.001, 0.005, 0.025, 0.1, 0.5, 2.5},
	}, httpLabels)

	r.HTTPRequestsInFlight = f.NewGauge(prometheus.GaugeOpts{
		Namespace: "socialgraph",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "HTTP requests currently being served",
	})
}
