package algorithms

import (
	"container/list"
	"slices"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

// ConnectedComponents finds all connected components in the graph
func ConnectedComponents(graph *storage.Graph) *CommunityDetectionResult {
	ids := graph.StudentIDs()
	return buildResult(graph, ids, componentGroups(graph, ids), MethodConnectedComponents)
}

// componentGroups runs a BFS from every unvisited student in insertion order.
// The returned groups hold indices into ids.
func componentGroups(graph *storage.Graph, ids []string) [][]int {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	visited := make([]bool, len(ids))
	groups := make([][]int, 0)

	for start := range ids {
		if visited[start] {
			continue
		}

		group := make([]int, 0)
		queue := list.New()
		queue.PushBack(start)
		visited[start] = true

		for queue.Len() > 0 {
			current := queue.Remove(queue.Front()).(int)
			group = append(group, current)

			for _, neighbor := range graph.Neighbors(ids[current]) {
				idx := index[neighbor]
				if !visited[idx] {
					visited[idx] = true
					queue.PushBack(idx)
				}
			}
		}

		slices.Sort(group)
		groups = append(groups, group)
	}

	return groups
}

// components returns each connected component as student IDs in insertion
// order, in discovery order.
func components(graph *storage.Graph) [][]string {
	ids := graph.StudentIDs()
	groups := componentGroups(graph, ids)
	out := make([][]string, 0, len(groups))
	for _, group := range groups {
		members := make([]string, 0, len(group))
		for _, idx := range group {
			members = append(members, ids[idx])
		}
		out = append(out, members)
	}
	return out
}

// largestComponent returns the biggest component. The first one found wins
// ties.
func largestComponent(graph *storage.Graph) []string {
	var largest []string
	for _, c := range components(graph) {
		if len(c) > len(largest) {
			largest = c
		}
	}
	return largest
}
