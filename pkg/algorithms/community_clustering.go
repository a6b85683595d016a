package algorithms

import "github.com/dd0wney/socialgraph/pkg/storage"

// ClusteringCoefficient computes the local clustering coefficient of every student:
// the share of pairs of friends who are also friends with each other.
// Students with fewer than two friends score 0.
func ClusteringCoefficient(graph *storage.Graph) map[string]float64 {
	coefficients := make(map[string]float64, graph.StudentCount())

	for _, id := range graph.StudentIDs() {
		neighbors := graph.Neighbors(id)
		k := len(neighbors)
		if k < 2 {
			coefficients[id] = 0.0
			continue
		}

		// AreConnected is a constant-time lookup, so this is O(k²)
		triangles := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if graph.AreConnected(neighbors[i], neighbors[j]) {
					triangles++
				}
			}
		}

		coefficients[id] = float64(triangles) / float64(k*(k-1)/2)
	}

	return coefficients
}

// AverageClusteringCoefficient averages the local coefficient over all students.
func AverageClusteringCoefficient(graph *storage.Graph) float64 {
	coefficients := ClusteringCoefficient(graph)
	if len(coefficients) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, coef := range coefficients {
		sum += coef
	}
	return sum / float64(len(coefficients))
}
