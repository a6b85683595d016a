package visualization

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

// setupTestGraph creates a path A-B-C plus an isolated D.
func setupTestGraph(t *testing.T) *storage.Graph {
	t.Helper()

	g := storage.NewGraph()
	for _, s := range []struct{ id, name string }{
		{"A", "Alice"}, {"B", "Bob"}, {"C", "Charlie"}, {"D", "Dana"},
	} {
		if err := g.InsertStudent(s.id, s.name, "Ingenieria", nil); err != nil {
			t.Fatalf("InsertStudent failed: %v", err)
		}
	}
	if err := g.AddFriendship("A", "B", storage.WeightNormal); err != nil {
		t.Fatalf("AddFriendship failed: %v", err)
	}
	if err := g.AddFriendship("B", "C", storage.WeightClosest); err != nil {
		t.Fatalf("AddFriendship failed: %v", err)
	}
	return g
}

func assertInBounds(t *testing.T, positions map[string]Position, width, height float64) {
	t.Helper()
	for id, pos := range positions {
		if pos.X < 0 || pos.X > width || pos.Y < 0 || pos.Y > height {
			t.Errorf("Student %s position (%f, %f) out of bounds", id, pos.X, pos.Y)
		}
	}
}

// TestForceDirectedLayout tests the spring layout
func TestForceDirectedLayout(t *testing.T) {
	g := setupTestGraph(t)

	layout := NewForceDirectedLayout(&LayoutConfig{Width: 800, Height: 600, Iterations: 50, Seed: 1})
	positions, err := layout.ComputeLayout(g, g.StudentIDs())
	if err != nil {
		t.Fatalf("Layout computation failed: %v", err)
	}

	if len(positions) != 4 {
		t.Errorf("Expected 4 positions, got %d", len(positions))
	}
	assertInBounds(t, positions, 800, 600)

	again, _ := NewForceDirectedLayout(&LayoutConfig{Width: 800, Height: 600, Iterations: 50, Seed: 1}).
		ComputeLayout(g, g.StudentIDs())
	for id, pos := range positions {
		if again[id] != pos {
			t.Errorf("Same seed should give the same layout for %s", id)
		}
	}
}

// TestCircularLayout tests circular layout
func TestCircularLayout(t *testing.T) {
	g := setupTestGraph(t)

	layout := NewCircularLayout(&LayoutConfig{Width: 800, Height: 600})
	positions, err := layout.ComputeLayout(g, g.StudentIDs())
	if err != nil {
		t.Fatalf("Layout computation failed: %v", err)
	}

	// Every student sits on the same radius around the centre
	radius := math.Min(400, 300) - 50
	for id, pos := range positions {
		if d := distance(pos, Position{X: 400, Y: 300}); math.Abs(d-radius) > 1e-6 {
			t.Errorf("Student %s at distance %f, want %f", id, d, radius)
		}
	}
	if a := positions["A"]; math.Abs(a.X-(400+radius)) > 1e-6 || math.Abs(a.Y-300) > 1e-6 {
		t.Errorf("First student should start at angle 0, got %+v", a)
	}
}

// TestHierarchicalLayout tests the shell layout
func TestHierarchicalLayout(t *testing.T) {
	g := setupTestGraph(t)

	layout := NewHierarchicalLayout(&LayoutConfig{Width: 800, Height: 600})
	positions, err := layout.ComputeLayout(g, g.StudentIDs())
	if err != nil {
		t.Fatalf("Layout computation failed: %v", err)
	}

	center := Position{X: 400, Y: 300}
	if positions["B"] != center {
		t.Errorf("Most connected student B should be centred, got %+v", positions["B"])
	}
	dA, dC, dD := distance(positions["A"], center), distance(positions["C"], center), distance(positions["D"], center)
	if math.Abs(dA-dC) > 1e-6 {
		t.Errorf("A and C share a ring, got %f and %f", dA, dC)
	}
	if dD <= dA {
		t.Errorf("Unreachable D should sit on the outer ring, got %f <= %f", dD, dA)
	}
	assertInBounds(t, positions, 800, 600)
}

func TestHierarchicalLayout_ExplicitRoot(t *testing.T) {
	g := setupTestGraph(t)

	positions, _ := NewHierarchicalLayout(&LayoutConfig{Width: 800, Height: 600, Root: "A"}).
		ComputeLayout(g, g.StudentIDs())
	if positions["A"] != (Position{X: 400, Y: 300}) {
		t.Errorf("Root A should be centred, got %+v", positions["A"])
	}
}

// TestLayoutNormalization tests position normalization
func TestLayoutNormalization(t *testing.T) {
	positions := map[string]Position{
		"a": {X: -100, Y: -100},
		"b": {X: 1000, Y: 1000},
		"c": {X: 500, Y: 500},
	}

	normalized := normalizePositions(positions, 800, 600, 50)
	assertInBounds(t, normalized, 800, 600)

	if normalized["a"].X != 50 || normalized["b"].X != 750 {
		t.Errorf("Extremes should touch the padding, got %+v %+v", normalized["a"], normalized["b"])
	}
}

// TestEmptyGraph tests layouts with no students
func TestEmptyGraph(t *testing.T) {
	g := storage.NewGraph()
	for _, kind := range Kinds {
		layout, err := NewLayout(string(kind), &LayoutConfig{Width: 800, Height: 600})
		if err != nil {
			t.Fatalf("NewLayout(%s) failed: %v", kind, err)
		}
		positions, err := layout.ComputeLayout(g, nil)
		if err != nil {
			t.Fatalf("%s layout failed: %v", kind, err)
		}
		if len(positions) != 0 {
			t.Errorf("%s: expected 0 positions, got %d", kind, len(positions))
		}
	}
}

// TestSingleNodeLayout tests layouts with one student
func TestSingleNodeLayout(t *testing.T) {
	g := storage.NewGraph()
	if err := g.InsertStudent("solo", "Solo", "Arte", nil); err != nil {
		t.Fatal(err)
	}

	for _, kind := range Kinds {
		layout, _ := NewLayout(string(kind), &LayoutConfig{Width: 800, Height: 600})
		positions, err := layout.ComputeLayout(g, []string{"solo"})
		if err != nil {
			t.Fatalf("%s layout failed: %v", kind, err)
		}
		if pos := positions["solo"]; math.Abs(pos.X-400) > 1e-6 || math.Abs(pos.Y-300) > 1e-6 {
			t.Errorf("%s: single student not centered: (%f, %f)", kind, pos.X, pos.Y)
		}
	}
}

func TestNewLayout_Unknown(t *testing.T) {
	if _, err := NewLayout("kamada_kawai", &LayoutConfig{}); err == nil {
		t.Error("Expected error for unknown layout")
	}
}

func TestGrid(t *testing.T) {
	cells := Grid(map[string]Position{
		"a": {X: 0, Y: 0},
		"b": {X: 800, Y: 600},
		"c": {X: 400, Y: 300},
	}, 800, 600, 40, 20)

	if cells["a"] != [2]int{0, 0} || cells["b"] != [2]int{39, 19} || cells["c"] != [2]int{20, 10} {
		t.Errorf("Unexpected cells: %v", cells)
	}
}

// TestVisualizationExport tests exporting layout to JSON
func TestVisualizationExport(t *testing.T) {
	g := setupTestGraph(t)

	viz, err := Build(g, NewCircularLayout(&LayoutConfig{Width: 800, Height: 600}), map[string]int{"A": 0, "B": 0})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	jsonData, err := viz.ExportJSON()
	if err != nil {
		t.Fatalf("JSON export failed: %v", err)
	}
	if !strings.Contains(string(jsonData), "Alice") || !strings.Contains(string(jsonData), "Charlie") {
		t.Error("JSON export missing student data")
	}

	var data VizData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		t.Fatalf("Export is not valid JSON: %v", err)
	}
	if len(data.Students) != 4 || len(data.Friendships) != 2 {
		t.Errorf("Unexpected export sizes: %d students, %d friendships", len(data.Students), len(data.Friendships))
	}
	if data.Students[0].Community == nil || data.Students[3].Community != nil {
		t.Error("Only coloured students should carry a community")
	}
	if data.Friendships[1].Weight != 3 {
		t.Errorf("Expected weight 3 on B-C, got %d", data.Friendships[1].Weight)
	}
}

// Helper function to calculate distance between two positions
func distance(p1, p2 Position) float64 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return math.Sqrt(dx*dx + dy*dy)
}
