package health

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

// SimpleCheck always reports healthy; it backs the liveness probe.
func SimpleCheck(name string) CheckFunc {
	return func() Check {
		return Check{Name: name, Status: StatusHealthy}
	}
}

// GraphCheck reports the size of the loaded network. An empty network is
// degraded: the server answers but every analytic is trivial.
func GraphCheck(stats func() storage.Statistics) CheckFunc {
	return func() Check {
		s := stats()
		check := Check{
			Name:   "graph",
			Status: StatusHealthy,
			Details: map[string]any{
				"students":          s.StudentCount,
				"friendships":       s.FriendshipCount,
				"isolated_students": s.IsolatedStudents,
			},
			Message: "Network loaded",
		}
		if s.StudentCount == 0 {
			check.Status = StatusDegraded
			check.Message = "No students loaded"
		}
		return check
	}
}

// DataDirCheck verifies that dir exists and accepts new files, so saves and
// backups can succeed.
func DataDirCheck(dir string) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "data_dir",
			Details: map[string]any{"path": dir},
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}
		f, err := os.CreateTemp(dir, ".health-*")
		if err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}
		name := f.Name()
		f.Close()
		os.Remove(filepath.Clean(name))

		check.Status = StatusHealthy
		check.Message = "Writable"
		return check
	}
}

// ShutdownCheck fails readiness once the server starts draining.
func ShutdownCheck(shuttingDown func() bool) CheckFunc {
	return func() Check {
		if shuttingDown() {
			return Check{Name: "server", Status: StatusUnhealthy, Message: "Shutting down"}
		}
		return Check{Name: "server", Status: StatusHealthy, Message: "Accepting requests"}
	}
}

// MemoryCheck reports heap usage. getUsage defaults to runtime statistics.
func MemoryCheck(getUsage func() (alloc, sys uint64)) CheckFunc {
	if getUsage == nil {
		getUsage = func() (uint64, uint64) {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			return m.HeapAlloc, m.Sys
		}
	}
	return func() Check {
		alloc, sys := getUsage()
		check := Check{
			Name: "memory",
			Details: map[string]any{
				"alloc_bytes": alloc,
				"sys_bytes":   sys,
			},
			Status:  StatusHealthy,
			Message: "Memory usage normal",
		}

		if sys > 0 && float64(alloc)/float64(sys) > 0.9 {
			check.Status = StatusDegraded
			check.Message = "High memory usage"
		}
		return check
	}
}
