package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// initSystemMetrics registers the Go runtime and process collectors, which
// export goroutine, heap and file-descriptor series, plus an uptime gauge
// refreshed by UpdateSystemMetrics.
func (r *Registry) initSystemMetrics() {
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: "socialgraph"}),
	)

	r.UptimeSeconds = promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Name: "socialgraph_uptime_seconds",
		Help: "Seconds since the process started serving",
	})
	r.StartTime = promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Name: "socialgraph_start_time_seconds",
		Help: "Unix time at which the server started",
	})
}
