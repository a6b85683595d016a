package algorithms

import (
	"slices"
	"testing"

	"github.com/dd0wney/socialgraph/pkg/storage"
)

func TestDetectCommunities_TwoTriangles(t *testing.T) {
	g := setupTwoTrianglesGraph(t)

	result := DetectCommunities(g, DefaultCommunityOptions())
	if result.Fallback {
		t.Fatalf("Unexpected fallback: %s", result.FallbackReason)
	}
	if result.Method != MethodGreedyModularity {
		t.Errorf("Expected greedy modularity, got %s", result.Method)
	}
	if len(result.Communities) != 2 {
		t.Fatalf("Expected 2 communities, got %d", len(result.Communities))
	}
	if !slices.Equal(result.Communities[0].Members, []string{"A", "B", "C"}) {
		t.Errorf("First community = %v", result.Communities[0].Members)
	}
	if !slices.Equal(result.Communities[1].Members, []string{"D", "E", "F"}) {
		t.Errorf("Second community = %v", result.Communities[1].Members)
	}
	if result.Communities[0].Density != 1.0 {
		t.Errorf("Triangle density should be 1, got %v", result.Communities[0].Density)
	}

	// Q = 2 * (3/7 - (7/14)^2)
	if !almostEqual(result.Modularity, 2*(3.0/7.0-0.25)) {
		t.Errorf("Modularity = %v", result.Modularity)
	}
}

func TestDetectCommunities_Total(t *testing.T) {
	g := setupTwoTrianglesGraph(t)
	_ = g.InsertStudent("Z", "Zed", "Derecho", nil)

	result := DetectCommunities(g, DefaultCommunityOptions())
	if len(result.NodeCommunity) != g.StudentCount() {
		t.Fatalf("Assignment must cover every student, got %v", result.NodeCommunity)
	}
	for _, c := range result.Communities {
		for _, id := range c.Members {
			if result.NodeCommunity[id] != c.ID {
				t.Errorf("%s assigned to %d but listed in %d", id, result.NodeCommunity[id], c.ID)
			}
		}
	}
	last := result.Communities[len(result.Communities)-1]
	if !slices.Equal(last.Members, []string{"Z"}) {
		t.Errorf("Isolated student should be a singleton community, got %v", last.Members)
	}
}

func TestDetectCommunities_Empty(t *testing.T) {
	result := DetectCommunities(storage.NewGraph(), DefaultCommunityOptions())
	if result.NodeCommunity == nil || len(result.NodeCommunity) != 0 {
		t.Errorf("Expected empty mapping, got %#v", result.NodeCommunity)
	}
	if result.Fallback {
		t.Error("Empty graph should not be reported as a fallback")
	}
}

func TestDetectCommunities_FallbackWithoutFriendships(t *testing.T) {
	g := buildTestGraph(t, []string{"A", "B", "C"}, nil)

	result := DetectCommunities(g, DefaultCommunityOptions())
	if !result.Fallback {
		t.Fatal("Expected connected-components fallback")
	}
	if result.FallbackReason != ErrNoEdgeWeight.Error() {
		t.Errorf("FallbackReason = %q", result.FallbackReason)
	}
	if result.Method != MethodConnectedComponents {
		t.Errorf("Method = %s, want connected components", result.Method)
	}
	if len(result.Communities) != 3 {
		t.Errorf("Expected 3 singleton communities, got %d", len(result.Communities))
	}
}

func TestDetectCommunities_ForcedComponents(t *testing.T) {
	g := setupTwoTrianglesGraph(t)

	result := DetectCommunities(g, CommunityOptions{Method: MethodConnectedComponents})
	if result.Fallback {
		t.Error("A requested method is not a fallback")
	}
	if len(result.Communities) != 1 || result.Communities[0].Size != 6 {
		t.Errorf("Expected a single component of 6, got %+v", result.Communities)
	}
}

func TestConnectedComponents_Ordering(t *testing.T) {
	g := buildTestGraph(t, []string{"A", "B", "C", "D", "E", "F"}, []testEdge{
		{"A", "B", 1},
		{"C", "D", 1}, {"D", "E", 1},
	})

	result := ConnectedComponents(g)
	want := [][]string{{"C", "D", "E"}, {"A", "B"}, {"F"}}
	if len(result.Communities) != len(want) {
		t.Fatalf("Expected %d components, got %d", len(want), len(result.Communities))
	}
	for i, c := range result.Communities {
		if !slices.Equal(c.Members, want[i]) || c.ID != i {
			t.Errorf("component %d = %v (id %d), want %v", i, c.Members, c.ID, want[i])
		}
	}
}

func TestModularity_SingleCommunity(t *testing.T) {
	g := setupTwoTrianglesGraph(t)

	all := make(map[string]int)
	for _, id := range g.StudentIDs() {
		all[id] = 0
	}
	if q := Modularity(g, all); !almostEqual(q, 0) {
		t.Errorf("One community should have modularity 0, got %v", q)
	}
	if q := Modularity(buildTestGraph(t, []string{"A"}, nil), map[string]int{"A": 0}); q != 0 {
		t.Errorf("Graph without weight should score 0, got %v", q)
	}
}

func TestParseCommunityMethod(t *testing.T) {
	tests := map[string]CommunityMethod{
		"":                     MethodGreedyModularity,
		"greedy":               MethodGreedyModularity,
		"Connected_Components": MethodConnectedComponents,
		"lpa":                  MethodLabelPropagation,
	}
	for in, want := range tests {
		got, err := ParseCommunityMethod(in)
		if err != nil || got != want {
			t.Errorf("ParseCommunityMethod(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseCommunityMethod("louvain"); err == nil {
		t.Error("Expected error for unknown method")
	}
}

func TestCommunityStatistics(t *testing.T) {
	g := setupTwoTrianglesGraph(t)
	_ = g.UpdateStudent("B", "", "Medicina")

	result := DetectCommunities(g, DefaultCommunityOptions())
	stats := CommunityStatistics(g, result.NodeCommunity)

	if len(stats) != 2 {
		t.Fatalf("Expected 2 communities, got %d", len(stats))
	}
	first := stats[result.NodeCommunity["A"]]
	if first.Size != 3 || first.InternalEdges != 3 {
		t.Errorf("Unexpected stats: %+v", first)
	}
	if first.Categories["Ingenieria"] != 2 || first.Categories["Medicina"] != 1 {
		t.Errorf("Unexpected categories: %v", first.Categories)
	}
	if !slices.Equal(first.Members, []string{"A", "B", "C"}) {
		t.Errorf("Unexpected members: %v", first.Members)
	}
	if cat, n := first.DominantCategory(); cat != "Ingenieria" || n != 2 {
		t.Errorf("DominantCategory = %s/%d", cat, n)
	}
}

func TestCommunityStatistics_Empty(t *testing.T) {
	g := setupTwoTrianglesGraph(t)
	if stats := CommunityStatistics(g, map[string]int{}); stats == nil || len(stats) != 0 {
		t.Errorf("Expected empty map, got %#v", stats)
	}
}

func TestLabelPropagation_HeavyTriangles(t *testing.T) {
	g := buildTestGraph(t, []string{"A", "B", "C", "D", "E", "F"}, []testEdge{
		{"A", "B", 3}, {"B", "C", 3}, {"A", "C", 3},
		{"D", "E", 3}, {"E", "F", 3}, {"D", "F", 3},
		{"C", "D", 1},
	})

	result := DetectCommunities(g, CommunityOptions{Method: MethodLabelPropagation})
	if result.Method != MethodLabelPropagation {
		t.Errorf("Expected label propagation, got %s", result.Method)
	}
	if len(result.Communities) != 2 {
		t.Fatalf("Expected 2 communities, got %+v", result.Communities)
	}
	if !slices.Equal(result.Communities[0].Members, []string{"A", "B", "C"}) ||
		!slices.Equal(result.Communities[1].Members, []string{"D", "E", "F"}) {
		t.Errorf("Unexpected partition: %v / %v", result.Communities[0].Members, result.Communities[1].Members)
	}
}

func TestLabelPropagation_IsolatedStudents(t *testing.T) {
	g := buildTestGraph(t, []string{"A", "B", "C"}, []testEdge{{"A", "B", 1}})

	result := LabelPropagation(g, 0)
	if len(result.NodeCommunity) != 3 {
		t.Fatalf("Assignment must cover every student, got %v", result.NodeCommunity)
	}
	if result.NodeCommunity["A"] != result.NodeCommunity["B"] {
		t.Error("Friends A and B should share a label")
	}
	if result.NodeCommunity["C"] == result.NodeCommunity["A"] {
		t.Error("Isolated C should keep its own community")
	}
}

func TestClusteringCoefficient(t *testing.T) {
	g := setupTwoTrianglesGraph(t)

	coefficients := ClusteringCoefficient(g)
	want := map[string]float64{"A": 1, "B": 1, "C": 1.0 / 3, "D": 1.0 / 3, "E": 1, "F": 1}
	for id, w := range want {
		if !almostEqual(coefficients[id], w) {
			t.Errorf("clustering[%s] = %v, want %v", id, coefficients[id], w)
		}
	}
	if avg := AverageClusteringCoefficient(g); !almostEqual(avg, 7.0/9.0) {
		t.Errorf("Average clustering = %v, want %v", avg, 7.0/9.0)
	}
	if avg := AverageClusteringCoefficient(storage.NewGraph()); avg != 0 {
		t.Errorf("Empty graph average should be 0, got %v", avg)
	}
}
