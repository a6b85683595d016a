package algorithms

import (
	"errors"
	"fmt"
	"math"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

// ErrNotConverged reports that power iteration hit its iteration limit.
var ErrNotConverged = errors.New("eigenvector power iteration did not converge")

// EigenvectorOptions configures eigenvector centrality
type EigenvectorOptions struct {
	MaxIterations int
	Tolerance     float64 // Per-student convergence threshold
}

// DefaultEigenvectorOptions returns default eigenvector configuration
func DefaultEigenvectorOptions() EigenvectorOptions {
	return EigenvectorOptions{
		MaxIterations: 1000,
		Tolerance:     1e-6,
	}
}

// EigenvectorResult contains eigenvector scores for all students.
//
// When the iteration does not converge, Fallback is set, Err wraps
// ErrNotConverged and every student scores 1/N.
type EigenvectorResult struct {
	Scores        map[string]float64 `json:"scores"`
	Iterations    int                `json:"iterations"`
	Converged     bool               `json:"converged"`
	Fallback      bool               `json:"fallback"`
	ComponentSize int                `json:"component_size"` // Students the iteration ran over
	Err           error              `json:"-"`
}

// EigenvectorCentrality computes the principal eigenvector of the weighted
// adjacency matrix by power iteration. Only the largest connected component
// takes part; everyone else scores 0. Each step multiplies by (A + I).
// A lone student scores 1, but a graph with several students and no
// friendships scores 0 throughout.
func EigenvectorCentrality(graph *storage.Graph, opts EigenvectorOptions) *EigenvectorResult {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultEigenvectorOptions().MaxIterations
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultEigenvectorOptions().Tolerance
	}

	ids := graph.StudentIDs()
	if len(ids) == 0 {
		return &EigenvectorResult{
			Scores:    make(map[string]float64),
			Converged: true,
		}
	}

	component := largestComponent(graph)
	scores := make(map[string]float64, len(ids))
	for _, id := range ids {
		scores[id] = 0
	}

	k := len(component)
	// With no friendships at all nobody is central.
	if k == 1 && len(ids) > 1 {
		return &EigenvectorResult{Scores: scores, Converged: true, ComponentSize: k}
	}

	x := make(map[string]float64, k)
	for _, id := range component {
		x[id] = 1.0 / float64(k)
	}

	converged := false
	iterations := 0

	for iterations < opts.MaxIterations {
		iterations++

		last := x
		x = make(map[string]float64, k)
		for _, id := range component {
			x[id] = last[id]
		}
		for _, id := range component {
			graph.ForEachNeighbor(id, func(neighbor string, w storage.Weight) bool {
				x[neighbor] += last[id] * float64(w)
				return true
			})
		}

		norm := 0.0
		for _, v := range x {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			norm = 1
		}
		for id := range x {
			x[id] /= norm
		}

		diff := 0.0
		for _, id := range component {
			diff += math.Abs(x[id] - last[id])
		}
		if diff < float64(k)*opts.Tolerance {
			converged = true
			break
		}
	}

	if !converged {
		uniform := 1.0 / float64(len(ids))
		for _, id := range ids {
			scores[id] = uniform
		}
		return &EigenvectorResult{
			Scores:        scores,
			Iterations:    iterations,
			Fallback:      true,
			ComponentSize: k,
			Err:           fmt.Errorf("%w after %d iterations", ErrNotConverged, iterations),
		}
	}

	for id, v := range x {
		scores[id] = v
	}
	return &EigenvectorResult{
		Scores:        scores,
		Iterations:    iterations,
		Converged:     true,
		ComponentSize: k,
	}
}
