package algorithms

import (
	"errors"
	"slices"
	"testing"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

// TestShortestPath_SameNode tests path from a student to itself
func TestShortestPath_SameNode(t *testing.T) {
	g := setupScenarioGraph(t)

	path, err := ShortestPath(g, "C", "C")
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}
	if !slices.Equal(path, []string{"C"}) {
		t.Errorf("Expected path [C], got %v", path)
	}
}

// TestShortestPath_Scenario checks the hop-count path ignores weights
func TestShortestPath_Scenario(t *testing.T) {
	g := setupScenarioGraph(t)

	path, err := ShortestPath(g, "A", "D")
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}
	if !slices.Equal(path, []string{"A", "B", "D"}) {
		t.Errorf("Expected path [A B D], got %v", path)
	}

	back, err := ShortestPath(g, "D", "C")
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}
	if !slices.Equal(back, []string{"D", "B", "A", "C"}) {
		t.Errorf("Expected path [D B A C], got %v", back)
	}
}

// TestShortestPath_FirstPredecessorWins tests the tie between two routes
func TestShortestPath_FirstPredecessorWins(t *testing.T) {
	// S-X-T and S-Y-T are both two hops; X is discovered first
	g := buildTestGraph(t, []string{"S", "X", "Y", "T"}, []testEdge{
		{"S", "X", 1}, {"S", "Y", 1}, {"Y", "T", 1}, {"X", "T", 3},
	})

	path, err := ShortestPath(g, "S", "T")
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}
	if !slices.Equal(path, []string{"S", "X", "T"}) {
		t.Errorf("Expected path [S X T], got %v", path)
	}
}

// TestShortestPath_NoPath tests disconnected students
func TestShortestPath_NoPath(t *testing.T) {
	g := buildTestGraph(t, []string{"A", "B", "C"}, []testEdge{{"A", "B", 1}})

	path, err := ShortestPath(g, "A", "C")
	if path != nil {
		t.Errorf("Expected nil path, got %v", path)
	}
	if !IsNoPath(err) {
		t.Errorf("Expected ErrNoPath, got %v", err)
	}
	if !errors.Is(err, storage.ErrStudentNotFound) {
		t.Error("ErrNoPath should be a not-found error")
	}
}

// TestShortestPath_UnknownStudent tests a missing endpoint
func TestShortestPath_UnknownStudent(t *testing.T) {
	g := setupScenarioGraph(t)

	if _, err := ShortestPath(g, "A", "Z"); !storage.IsNotFound(err) {
		t.Errorf("Expected not found for unknown end, got %v", err)
	}
	if _, err := ShortestPath(g, "Z", "A"); !storage.IsNotFound(err) {
		t.Errorf("Expected not found for unknown start, got %v", err)
	}
}

func TestHopDistances(t *testing.T) {
	g := setupScenarioGraph(t)

	got := HopDistances(g, "A")
	want := map[string]int{"A": 0, "B": 1, "C": 1, "D": 2}
	for id, d := range want {
		if got[id] != d {
			t.Errorf("distance[%s] = %d, want %d", id, got[id], d)
		}
	}
	if len(HopDistances(g, "missing")) != 0 {
		t.Error("Unknown source should have no distances")
	}
}

func TestWeightedShortestPath(t *testing.T) {
	g := buildTestGraph(t, []string{"A", "B", "C"}, []testEdge{
		{"A", "B", 3}, {"A", "C", 1}, {"C", "B", 1},
	})

	path, dist, err := WeightedShortestPath(g, "A", "B")
	if err != nil {
		t.Fatalf("WeightedShortestPath failed: %v", err)
	}
	if dist != 2 {
		t.Errorf("Expected distance 2, got %d", dist)
	}
	if !slices.Equal(path, []string{"A", "C", "B"}) {
		t.Errorf("Expected path [A C B], got %v", path)
	}

	_ = g.InsertStudent("Z", "Zed", "Derecho", nil)
	if _, _, err := WeightedShortestPath(g, "A", "Z"); !IsNoPath(err) {
		t.Errorf("Expected ErrNoPath, got %v", err)
	}
}
