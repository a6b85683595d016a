package algorithms

import (
	"container/list"
	"slices"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

// BFS returns the students reachable from start in level order, start first.
// Neighbours are visited in the order the friendships were created. An
// unknown start yields an empty sequence.
func BFS(graph *storage.Graph, start string) []string {
	if !graph.HasStudent(start) {
		return []string{}
	}

	order := make([]string, 0, graph.StudentCount())
	visited := map[string]bool{start: true}

	queue := list.New()
	queue.PushBack(start)

	for queue.Len() > 0 {
		current := queue.Remove(queue.Front()).(string)
		order = append(order, current)

		for _, neighbor := range graph.Neighbors(current) {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue.PushBack(neighbor)
			}
		}
	}

	return order
}

// DFS returns the students of start's component in depth-first preorder.
// The explicit stack reproduces the order of the recursive traversal.
func DFS(graph *storage.Graph, start string) []string {
	if !graph.HasStudent(start) {
		return []string{}
	}

	order := make([]string, 0, graph.StudentCount())
	visited := make(map[string]bool)
	stack := []string{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[current] {
			continue
		}
		visited[current] = true
		order = append(order, current)

		// Push in reverse so the first neighbour is explored first
		neighbors := graph.Neighbors(current)
		for _, neighbor := range slices.Backward(neighbors) {
			if !visited[neighbor] {
				stack = append(stack, neighbor)
			}
		}
	}

	return order
}

// Levels groups the BFS order from start by hop distance.
func Levels(graph *storage.Graph, start string) [][]string {
	if !graph.HasStudent(start) {
		return nil
	}

	distance := map[string]int{start: 0}
	levels := [][]string{{start}}

	queue := list.New()
	queue.PushBack(start)

	for queue.Len() > 0 {
		current := queue.Remove(queue.Front()).(string)
		for _, neighbor := range graph.Neighbors(current) {
			if _, seen := distance[neighbor]; seen {
				continue
			}
			d := distance[current] + 1
			distance[neighbor] = d
			if d == len(levels) {
				levels = append(levels, nil)
			}
			levels[d] = append(levels[d], neighbor)
			queue.PushBack(neighbor)
		}
	}

	return levels
}
