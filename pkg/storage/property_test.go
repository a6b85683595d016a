package storage

import (
	"fmt"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const propertyPoolSize = 8

// applyOps decodes each integer into a mutation over a fixed pool of
// students and applies it, ignoring errors.
func applyOps(ops []int) *Graph {
	g := NewGraph()
	for i := range propertyPoolSize {
		_ = g.InsertStudent(fmt.Sprintf("s%d", i), "name", "cat", nil)
	}
	for _, v := range ops {
		a := fmt.Sprintf("s%d", (v/4)%propertyPoolSize)
		b := fmt.Sprintf("s%d", (v/32)%propertyPoolSize)
		w := Weight(v%3 + 1)
		switch v % 4 {
		case 0:
			_ = g.AddFriendship(a, b, w)
		case 1:
			_ = g.UpdateFriendshipWeight(a, b, w)
		case 2:
			_ = g.RemoveFriendship(a, b)
		case 3:
			_ = g.RemoveStudent(a)
			_ = g.InsertStudent(a, "name", "cat", nil)
		}
	}
	return g
}

// checkInvariants verifies symmetry, no dangling references and count
// consistency.
func checkInvariants(g *Graph) bool {
	ids := g.StudentIDs()
	degreeSum := 0
	for _, a := range ids {
		neighbors := g.Neighbors(a)
		if len(neighbors) != g.Degree(a) {
			return false
		}
		degreeSum += len(neighbors)
		for _, b := range neighbors {
			if !g.HasStudent(b) || b == a {
				return false
			}
		}
		for _, b := range ids {
			if g.AreConnected(a, b) != g.AreConnected(b, a) {
				return false
			}
			w1, err1 := g.Weight(a, b)
			w2, err2 := g.Weight(b, a)
			if w1 != w2 || (err1 == nil) != (err2 == nil) {
				return false
			}
			if err1 == nil && !w1.Valid() {
				return false
			}
		}
	}
	return degreeSum == 2*g.FriendshipCount() && len(g.Friendships()) == g.FriendshipCount()
}

// TestGraphInvariants uses property-based testing to verify the adjacency
// invariants hold after any sequence of mutations.
func TestGraphInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("adjacency stays symmetric and consistent", prop.ForAll(
		func(ops []int) bool {
			return checkInvariants(applyOps(ops))
		},
		gen.SliceOf(gen.IntRange(0, 1023)),
	))

	properties.Property("removed student leaves no trace", prop.ForAll(
		func(ops []int, victim int) bool {
			g := applyOps(ops)
			id := fmt.Sprintf("s%d", victim)
			if err := g.RemoveStudent(id); err != nil {
				return false
			}
			for _, other := range g.StudentIDs() {
				if slices.Contains(g.Neighbors(other), id) {
					return false
				}
			}
			return !g.HasStudent(id) && checkInvariants(g)
		},
		gen.SliceOf(gen.IntRange(0, 1023)),
		gen.IntRange(0, propertyPoolSize-1),
	))

	properties.Property("duplicate insert keeps the original student", prop.ForAll(
		func(name, category string) bool {
			g := NewGraph()
			if err := g.InsertStudent("x", "orig", "cat", []string{"Cine"}); err != nil {
				return false
			}
			if err := g.InsertStudent("x", name, category, nil); !IsDuplicate(err) {
				return false
			}
			s, _ := g.Student("x")
			return s.Name == "orig" && s.Category == "cat" && slices.Equal(s.Interests, []string{"Cine"})
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
