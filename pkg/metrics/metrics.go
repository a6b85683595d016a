package metrics

import (
	"strconv"
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordGraphOperation records a graph mutation or lookup. A nil err counts
// as success.
func (r *Registry) RecordGraphOperation(operation string, err error, duration time.Duration) {
	r.GraphOperationsTotal.WithLabelValues(operation, status(err)).Inc()
	r.GraphOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateGraphSize sets the student and friendship gauges.
func (r *Registry) UpdateGraphSize(students, friendships int) {
	r.GraphStudentsTotal.Set(float64(students))
	r.GraphFriendshipsTotal.Set(float64(friendships))
}

// UpdateWeightDistribution sets the per-weight friendship gauges.
func (r *Registry) UpdateWeightDistribution(byWeight map[int]int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.GraphFriendshipsByWeight.Reset()
	for w, n := range byWeight {
		r.GraphFriendshipsByWeight.WithLabelValues(strconv.Itoa(w)).Set(float64(n))
	}
}

// RecordAlgorithm records one analytics run
func (r *Registry) RecordAlgorithm(algorithm string, duration time.Duration) {
	r.AlgorithmRunsTotal.WithLabelValues(algorithm).Inc()
	r.AlgorithmDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}

// RecordCommunities records the outcome of a community detection.
func (r *Registry) RecordCommunities(count int, modularity float64, fallback bool) {
	r.CommunitiesDetected.Set(float64(count))
	r.LastModularity.Set(modularity)
	if fallback {
		r.CommunityFallbacksTotal.Inc()
	}
}

// RecordEigenvectorFallback counts a non-converged eigenvector run.
func (r *Registry) RecordEigenvectorFallback() {
	r.EigenvectorFallbacksTotal.Inc()
}

// RecordPersistence records a load or save with the bytes written and the
// rows skipped.
func (r *Registry) RecordPersistence(operation, format string, err error, bytesWritten int64, warnings int) {
	r.PersistenceOperationsTotal.WithLabelValues(operation, format, status(err)).Inc()
	if bytesWritten > 0 {
		r.PersistenceBytesWritten.WithLabelValues(format).Add(float64(bytesWritten))
	}
	if warnings > 0 {
		r.PersistenceLoadWarnings.Add(float64(warnings))
	}
}

// UpdateSystemMetrics refreshes the uptime gauges
func (r *Registry) UpdateSystemMetrics(startTime time.Time) {
	r.StartTime.Set(float64(startTime.Unix()))
	r.UptimeSeconds.Set(time.Since(startTime).Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
