package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	gql "github.com/dd0wney/socialgraph/pkg/graphql"
	"github.com/dd0wney/socialgraph/pkg/health"
	"github.com/dd0wney/socialgraph/pkg/logging"
	"github.com/dd0wney/socialgraph/pkg/metrics"
	"github.com/dd0wney/socialgraph/pkg/service"
)

// HandlerOption configures NewHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	checker *health.HealthChecker
}

// WithHealthChecker serves the given checker instead of DefaultHealthChecker.
func WithHealthChecker(hc *health.HealthChecker) HandlerOption {
	return func(c *handlerConfig) {
		c.checker = hc
	}
}

// DefaultHealthChecker reports the loaded network and memory usage on
// /health and answers /health/live unconditionally.
func DefaultHealthChecker(svc *service.Service) *health.HealthChecker {
	hc := health.NewHealthChecker()
	hc.RegisterCheck("graph", health.GraphCheck(svc.Statistics))
	hc.RegisterCheck("memory", health.MemoryCheck(nil))
	hc.RegisterLivenessCheck("process", health.SimpleCheck("process"))
	return hc
}

// NewHandler routes /graphql, /metrics and the /health probes. Every request
// is counted in reg.
func NewHandler(svc *service.Service, reg *metrics.Registry, logger logging.Logger, opts ...HandlerOption) (http.Handler, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	cfg := &handlerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.checker == nil {
		cfg.checker = DefaultHealthChecker(svc)
	}

	schema, err := gql.GenerateSchema(svc)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", gql.NewGraphQLHandler(schema, gql.WithHandlerLogger(logger)))
	mux.Handle("/metrics", promhttp.HandlerFor(reg.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", cfg.checker.HTTPHandler())
	mux.HandleFunc("/health/ready", cfg.checker.ReadinessHandler())
	mux.HandleFunc("/health/live", cfg.checker.LivenessHandler())

	return metricsMiddleware(reg, mux), nil
}

// metricsMiddleware tracks HTTP request metrics
func metricsMiddleware(reg *metrics.Registry, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reg.HTTPRequestsInFlight.Inc()
		defer reg.HTTPRequestsInFlight.Dec()

		wrapper := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		reg.RecordHTTPRequest(r.Method, r.URL.Path, strconv.Itoa(wrapper.statusCode), time.Since(start))
	})
}

// metricsResponseWriter wraps http.ResponseWriter to capture the status code
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *metricsResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// UpdateSystemMetrics refreshes the uptime gauges every interval
// until ctx is done.
func UpdateSystemMetrics(ctx context.Context, reg *metrics.Registry, interval time.Duration) {
	start := time.Now()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	reg.UpdateSystemMetrics(start)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reg.UpdateSystemMetrics(start)
		}
	}
}
