package algorithms

import (
	"errors"
	"testing"

	"github.com/dd0wney/socialgraph/pkg/parallel"
	"github.com/dd0wney/socialgraph/pkg/storage"
)

func TestTopN_TiesByID(t *testing.T) {
	scores := map[string]float64{"d": 0.5, "b": 0.9, "a": 0.5, "c": 0.5, "e": 0.1}

	top := TopN(scores, 3)
	want := []string{"b", "a", "c"}
	if len(top) != len(want) {
		t.Fatalf("Expected %d entries, got %v", len(want), top)
	}
	for i, id := range want {
		if top[i].StudentID != id || top[i].Rank != i+1 {
			t.Errorf("top[%d] = %+v, want %s rank %d", i, top[i], id, i+1)
		}
	}
}

func TestTopN_Bounds(t *testing.T) {
	scores := map[string]int{"a": 1, "b": 3, "c": 2}

	if got := TopN(scores, 0); len(got) != 3 || got[0].StudentID != "b" || got[2].StudentID != "a" {
		t.Errorf("n=0 should return everything sorted, got %v", got)
	}
	if got := TopN(scores, 10); len(got) != 3 {
		t.Errorf("n larger than the map should return everything, got %v", got)
	}
	if got := TopN(map[string]int{}, 5); got == nil || len(got) != 0 {
		t.Errorf("Empty scores should return an empty slice, got %#v", got)
	}
}

func TestCombineInfluence_Scenario(t *testing.T) {
	g := setupScenarioGraph(t)

	influence := CombineInfluence(g, DefaultCentralityOptions())
	want := []struct {
		id    string
		total int
	}{
		{"A", 50}, {"B", 39}, {"C", 29}, {"D", 22},
	}
	if len(influence) != len(want) {
		t.Fatalf("Expected %d entries, got %+v", len(want), influence)
	}
	for i, w := range want {
		if influence[i].StudentID != w.id || influence[i].Total != w.total {
			t.Errorf("influence[%d] = %+v, want %s/%d", i, influence[i], w.id, w.total)
		}
	}

	a := influence[0].Contributions
	if a.Degree != 20 || a.Betweenness != 15 || a.Closeness != 10 || a.Eigenvector != 5 {
		t.Errorf("Unexpected contributions for A: %+v", a)
	}
}

func TestCombineInfluence_OnlyTopFive(t *testing.T) {
	ids := []string{"A", "B", "C", "D", "E", "F", "G"}
	g := buildTestGraph(t, ids, nil)

	// With no friendships every metric ties at zero; the five smallest IDs
	// earn points and the rest are dropped.
	influence := CombineInfluence(g, DefaultCentralityOptions())
	for _, s := range influence {
		if s.StudentID == "F" || s.StudentID == "G" {
			t.Errorf("%s is outside every top five and should be excluded", s.StudentID)
		}
	}
}

func TestCombineInfluence_Empty(t *testing.T) {
	if got := CombineInfluence(storage.NewGraph(), DefaultCentralityOptions()); len(got) != 0 {
		t.Errorf("Expected no influence on an empty graph, got %v", got)
	}
}

func TestComputeAllCentrality(t *testing.T) {
	g := setupScenarioGraph(t)

	res := ComputeAllCentrality(g, CentralityOptions{TopN: 2})
	if len(res.TopDegree) != 2 || len(res.TopCloseness) != 2 {
		t.Errorf("Expected top lists of 2, got %d/%d", len(res.TopDegree), len(res.TopCloseness))
	}
	if res.TopEigenvector[0].StudentID != "A" {
		t.Errorf("Expected A to lead eigenvector, got %v", res.TopEigenvector)
	}
	if top := res.Top(MetricDegree); len(top) != 2 || top[0].Score != 2 {
		t.Errorf("Unexpected degree top list: %v", top)
	}
	if res.Top(Metric("bogus")) != nil {
		t.Error("Unknown metric should have no top list")
	}

	cmp := res.CompareStudents("D", "missing", "A")
	if len(cmp) != 2 {
		t.Fatalf("Expected unknown IDs to be skipped, got %+v", cmp)
	}
	if cmp[0].StudentID != "D" || cmp[0].Ranks.Degree != 4 || cmp[0].Ranks.Closeness != 3 {
		t.Errorf("Unexpected ranks for D: %+v", cmp[0])
	}
	if cmp[1].Ranks.Betweenness != 1 || cmp[1].Degree != 2 {
		t.Errorf("Unexpected values for A: %+v", cmp[1])
	}
}

func TestComputeAllCentrality_MetricPanics(t *testing.T) {
	g := setupScenarioGraph(t)

	// Only degree runs; the remaining metrics fail with a panic.
	runCentrality = func(_ int, tasks ...func()) error {
		tasks[0]()
		return parallel.Run(1, func() { panic("boom") })
	}
	defer func() { runCentrality = parallel.Run }()

	res := ComputeAllCentrality(g, DefaultCentralityOptions())
	if !errors.Is(res.Err, parallel.ErrTaskPanicked) {
		t.Fatalf("Expected ErrTaskPanicked, got %v", res.Err)
	}
	if res.Degree["A"] != 2 {
		t.Errorf("Degree should survive, got %v", res.Degree)
	}
	for _, id := range g.StudentIDs() {
		if res.Betweenness[id] != 0 || res.Closeness[id] != 0 || res.Eigenvector.Scores[id] != 0 {
			t.Errorf("Failed metrics should be zero for %s", id)
		}
	}
	if len(res.TopEigenvector) == 0 || len(res.Influence) == 0 {
		t.Error("Rankings should still be built from the available vectors")
	}
}

func TestParseMetric(t *testing.T) {
	if m, err := ParseMetric(" Closeness "); err != nil || m != MetricCloseness {
		t.Errorf("ParseMetric = %v, %v", m, err)
	}
	if _, err := ParseMetric("pagerank"); err == nil {
		t.Error("Expected error for unknown metric")
	}
}
