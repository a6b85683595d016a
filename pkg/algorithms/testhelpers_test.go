package algorithms

import (
	"math"
	"testing"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

type testEdge struct {
	a, b string
	w    storage.Weight
}

// buildTestGraph inserts the students in order, all in category "Ingenieria",
// then the friendships.
func buildTestGraph(t *testing.T, ids []string, edges []testEdge) *storage.Graph {
	t.Helper()

	g := storage.NewGraph()
	for _, id := range ids {
		if err := g.InsertStudent(id, "Student "+id, "Ingenieria", nil); err != nil {
			t.Fatalf("InsertStudent(%s) failed: %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddFriendship(e.a, e.b, e.w); err != nil {
			t.Fatalf("AddFriendship(%s, %s) failed: %v", e.a, e.b, err)
		}
	}
	return g
}

// setupScenarioGraph creates A,B,C,D with A-B(1), A-C(2), B-D(1).
func setupScenarioGraph(t *testing.T) *storage.Graph {
	t.Helper()
	return buildTestGraph(t, []string{"A", "B", "C", "D"}, []testEdge{
		{"A", "B", 1},
		{"A", "C", 2},
		{"B", "D", 1},
	})
}

// setupTwoTrianglesGraph creates triangles ABC and DEF joined by C-D.
func setupTwoTrianglesGraph(t *testing.T) *storage.Graph {
	t.Helper()
	return buildTestGraph(t, []string{"A", "B", "C", "D", "E", "F"}, []testEdge{
		{"A", "B", 1}, {"B", "C", 1}, {"A", "C", 1},
		{"D", "E", 1}, {"E", "F", 1}, {"D", "F", 1},
		{"C", "D", 1},
	})
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
