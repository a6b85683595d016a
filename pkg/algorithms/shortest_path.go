package algorithms

import (
	"container/heap"
	"container/list"
	"errors"
	"fmt"
	"slices"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

// ErrNoPath is returned when the two students are not in the same component.
// It wraps storage.ErrStudentNotFound so callers can treat it as a not-found.
var ErrNoPath = fmt.Errorf("no path between students: %w", storage.ErrStudentNotFound)

// ShortestPath finds a path with the fewest hops between two students using
// BFS. Weights are ignored. When several shortest paths exist, the first
// predecessor discovered wins.
func ShortestPath(graph *storage.Graph, startID, endID string) ([]string, error) {
	if !graph.HasStudent(startID) {
		return nil, storage.StudentNotFoundError("ShortestPath", startID)
	}
	if !graph.HasStudent(endID) {
		return nil, storage.StudentNotFoundError("ShortestPath", endID)
	}
	if startID == endID {
		return []string{startID}, nil
	}

	parent := map[string]string{startID: startID}
	queue := list.New()
	queue.PushBack(startID)

	for queue.Len() > 0 {
		currentID := queue.Remove(queue.Front()).(string)

		for _, neighborID := range graph.Neighbors(currentID) {
			if _, seen := parent[neighborID]; seen {
				continue
			}
			parent[neighborID] = currentID
			if neighborID == endID {
				return reconstructPath(parent, startID, endID), nil
			}
			queue.PushBack(neighborID)
		}
	}

	return nil, ErrNoPath
}

// reconstructPath walks parent pointers back from end.
func reconstructPath(parent map[string]string, startID, endID string) []string {
	path := []string{endID}
	for node := endID; node != startID; {
		node = parent[node]
		path = append(path, node)
	}
	slices.Reverse(path)
	return path
}

// HopDistances returns the BFS hop count from source to every reachable
// student.
func HopDistances(graph *storage.Graph, sourceID string) map[string]int {
	distances := make(map[string]int)
	if !graph.HasStudent(sourceID) {
		return distances
	}
	distances[sourceID] = 0

	queue := list.New()
	queue.PushBack(sourceID)

	for queue.Len() > 0 {
		currentID := queue.Remove(queue.Front()).(string)
		for _, neighborID := range graph.Neighbors(currentID) {
			if _, visited := distances[neighborID]; !visited {
				distances[neighborID] = distances[currentID] + 1
				queue.PushBack(neighborID)
			}
		}
	}

	return distances
}

// WeightedShortestPath finds the path of least total weight with Dijkstra's
// algorithm, treating friendship weight as distance.
func WeightedShortestPath(graph *storage.Graph, startID, endID string) ([]string, int, error) {
	if !graph.HasStudent(startID) {
		return nil, 0, storage.StudentNotFoundError("WeightedShortestPath", startID)
	}
	if !graph.HasStudent(endID) {
		return nil, 0, storage.StudentNotFoundError("WeightedShortestPath", endID)
	}

	sp := dijkstra(graph, startID)
	if _, ok := sp.distance[endID]; !ok {
		return nil, 0, ErrNoPath
	}

	parent := make(map[string]string, len(sp.preds))
	parent[startID] = startID
	for node, preds := range sp.preds {
		if len(preds) > 0 {
			parent[node] = preds[0]
		}
	}
	return reconstructPath(parent, startID, endID), sp.distance[endID], nil
}

// shortestPaths is the output of a single-source Dijkstra run.
type shortestPaths struct {
	order    []string            // settled students, non-decreasing distance
	distance map[string]int      // total weight from the source
	sigma    map[string]float64  // number of shortest paths from the source
	preds    map[string][]string // predecessors on shortest paths
}

// dijkstra runs Dijkstra from source over integer friendship weights,
// counting shortest paths for Brandes accumulation.
func dijkstra(graph *storage.Graph, source string) *shortestPaths {
	sp := &shortestPaths{
		distance: map[string]int{source: 0},
		sigma:    map[string]float64{source: 1},
		preds:    make(map[string][]string),
	}
	settled := make(map[string]bool)

	pq := &distanceQueue{}
	heap.Push(pq, distanceItem{id: source, distance: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(distanceItem)
		if settled[item.id] || item.distance > sp.distance[item.id] {
			continue
		}
		settled[item.id] = true
		sp.order = append(sp.order, item.id)

		graph.ForEachNeighbor(item.id, func(neighbor string, w storage.Weight) bool {
			if settled[neighbor] {
				return true
			}
			alt := item.distance + int(w)
			current, seen := sp.distance[neighbor]
			switch {
			case !seen || alt < current:
				sp.distance[neighbor] = alt
				sp.sigma[neighbor] = sp.sigma[item.id]
				sp.preds[neighbor] = []string{item.id}
				heap.Push(pq, distanceItem{id: neighbor, distance: alt, seq: pq.next()})
			case alt == current:
				sp.sigma[neighbor] += sp.sigma[item.id]
				sp.preds[neighbor] = append(sp.preds[neighbor], item.id)
			}
			return true
		})
	}

	return sp
}

// distanceItem is an entry of the Dijkstra frontier. seq breaks distance
// ties in push order.
type distanceItem struct {
	id       string
	distance int
	seq      int
}

// distanceQueue implements heap.Interface as a min-heap on distance.
type distanceQueue struct {
	items []distanceItem
	seq   int
}

func (q *distanceQueue) next() int {
	q.seq++
	return q.seq
}

func (q *distanceQueue) Len() int { return len(q.items) }

func (q *distanceQueue) Less(i, j int) bool {
	if q.items[i].distance != q.items[j].distance {
		return q.items[i].distance < q.items[j].distance
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *distanceQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *distanceQueue) Push(x any) { q.items = append(q.items, x.(distanceItem)) }

func (q *distanceQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

// IsNoPath reports whether err signals disconnected students.
func IsNoPath(err error) bool {
	return errors.Is(err, ErrNoPath)
}
