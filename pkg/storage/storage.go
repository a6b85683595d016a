package storage

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// neighborMap holds a student's friends in the order the friendships were
// first created.
type neighborMap = orderedmap.OrderedMap[string, Weight]

// Graph is the in-memory weighted undirected student graph.
//
// Students and adjacency lists keep insertion order, so every traversal and
// ranking built on top of them is deterministic for a given mutation history.
// Graph is not safe for concurrent use; callers that share one instance
// across goroutines must serialise access (see pkg/service).
type Graph struct {
	students  *orderedmap.OrderedMap[string, *Student]
	adjacency *orderedmap.OrderedMap[string, *neighborMap]
	edgeCount int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		students:  orderedmap.New[string, *Student](),
		adjacency: orderedmap.New[string, *neighborMap](),
	}
}

// StudentCount returns the number of students.
func (g *Graph) StudentCount() int {
	return g.students.Len()
}

// FriendshipCount returns the number of undirected friendships.
func (g *Graph) FriendshipCount() int {
	return g.edgeCount
}

// IsEmpty reports whether the graph has no students.
func (g *Graph) IsEmpty() bool {
	return g.students.Len() == 0
}

// Clear removes every student and friendship.
func (g *Graph) Clear() {
	g.students = orderedmap.New[string, *Student]()
	g.adjacency = orderedmap.New[string, *neighborMap]()
	g.edgeCount = 0
}

// Clone returns an independent deep copy of the graph that preserves
// insertion order of students and neighbours.
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	for pair := g.students.Oldest(); pair != nil; pair = pair.Next() {
		s := pair.Value.Clone()
		c.students.Set(pair.Key, &s)
	}
	for pair := g.adjacency.Oldest(); pair != nil; pair = pair.Next() {
		nm := orderedmap.New[string, Weight]()
		for n := pair.Value.Oldest(); n != nil; n = n.Next() {
			nm.Set(n.Key, n.Value)
		}
		c.adjacency.Set(pair.Key, nm)
	}
	c.edgeCount = g.edgeCount
	return c
}

func (g *Graph) neighbors(id string) *neighborMap {
	nm, ok := g.adjacency.Get(id)
	if !ok {
		return nil
	}
	return nm
}
