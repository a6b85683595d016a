package algorithms

import "github.com/dd0wney/socialgraph/pkg/storage"

// defaultPropagationIterations bounds label propagation when no limit is set
const defaultPropagationIterations = 100

// LabelPropagation performs weighted label propagation for community detection.
// Students are visited in insertion order and adopt the label with the largest
// total friendship weight among their neighbours; ties keep the current label
// if it is among the best, otherwise the smallest label wins. Isolated students
// keep their own label.
func LabelPropagation(graph *storage.Graph, maxIterations int) *CommunityDetectionResult {
	if maxIterations <= 0 {
		maxIterations = defaultPropagationIterations
	}

	ids := graph.StudentIDs()
	index := make(map[string]int, len(ids))
	labels := make([]int, len(ids))
	for i, id := range ids {
		index[id] = i
		labels[i] = i
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := false

		for i, id := range ids {
			weightByLabel := make(map[int]int)
			graph.ForEachNeighbor(id, func(neighbor string, w storage.Weight) bool {
				weightByLabel[labels[index[neighbor]]] += int(w)
				return true
			})
			if len(weightByLabel) == 0 {
				continue
			}

			maxWeight := 0
			for _, w := range weightByLabel {
				maxWeight = max(maxWeight, w)
			}
			best := labels[i]
			if weightByLabel[best] != maxWeight {
				best = len(ids)
				for label, w := range weightByLabel {
					if w == maxWeight && label < best {
						best = label
					}
				}
			}

			if best != labels[i] {
				labels[i] = best
				changed = true
			}
		}

		if !changed {
			break // Converged
		}
	}

	// Group indices by label, groups ordered by their first member
	groupOf := make(map[int]int)
	groups := make([][]int, 0)
	for i, label := range labels {
		g, ok := groupOf[label]
		if !ok {
			g = len(groups)
			groupOf[label] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}

	return buildResult(graph, ids, groups, MethodLabelPropagation)
}
