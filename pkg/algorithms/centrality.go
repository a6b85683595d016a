package algorithms

import (
	"slices"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

// DegreeCentrality returns the number of friends of every student.
func DegreeCentrality(graph *storage.Graph) map[string]int {
	degree := make(map[string]int, graph.StudentCount())
	for _, id := range graph.StudentIDs() {
		degree[id] = graph.Degree(id)
	}
	return degree
}

// brandesBetweenness runs Brandes' accumulation over Dijkstra shortest paths
// from every source and returns the raw, unnormalised scores.
func brandesBetweenness(graph *storage.Graph, ids []string) map[string]float64 {
	betweenness := make(map[string]float64, len(ids))
	for _, id := range ids {
		betweenness[id] = 0
	}

	for _, source := range ids {
		sp := dijkstra(graph, source)

		delta := make(map[string]float64, len(sp.order))
		for _, w := range slices.Backward(sp.order) {
			coeff := (1 + delta[w]) / sp.sigma[w]
			for _, v := range sp.preds[w] {
				delta[v] += sp.sigma[v] * coeff
			}
			if w != source {
				betweenness[w] += delta[w]
			}
		}
	}

	return betweenness
}

// BetweennessCentrality computes betweenness centrality for all students.
// Friendship weight is used as distance. Scores are normalised by
// 1/((n-1)(n-2)); graphs with fewer than three students score zero.
func BetweennessCentrality(graph *storage.Graph) map[string]float64 {
	ids := graph.StudentIDs()
	if len(ids) < 3 {
		scores := make(map[string]float64, len(ids))
		for _, id := range ids {
			scores[id] = 0
		}
		return scores
	}

	betweenness := brandesBetweenness(graph, ids)
	normFactor := 1.0 / float64((len(ids)-1)*(len(ids)-2))
	for id := range betweenness {
		betweenness[id] *= normFactor
	}
	return betweenness
}

// ClosenessCentrality computes closeness within each connected component:
// (k-1) divided by the sum of weighted distances to the other k-1 members.
// Students alone in their component score zero.
func ClosenessCentrality(graph *storage.Graph) map[string]float64 {
	closeness := make(map[string]float64, graph.StudentCount())

	for _, id := range graph.StudentIDs() {
		sp := dijkstra(graph, id)
		reached := len(sp.distance)

		total := 0
		for _, d := range sp.distance {
			total += d
		}

		if reached > 1 && total > 0 {
			closeness[id] = float64(reached-1) / float64(total)
		} else {
			closeness[id] = 0
		}
	}

	return closeness
}
