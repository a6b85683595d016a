package algorithms

import (
	"cmp"
	"container/heap"
	"fmt"
	"slices"
	"strings"

	"github.com/dd0wney/socialgraph/pkg/logging"
	"github.com/dd0wney/socialgraph/pkg/parallel"
	"github.com/dd0wney/socialgraph/pkg/storage"
)

// Number is the score type of a centrality vector.
type Number interface {
	~int | ~float64
}

// Ranked is a student with its score and 1-based rank.
type Ranked[V Number] struct {
	StudentID string `json:"student_id"`
	Score     V      `json:"score"`
	Rank      int    `json:"rank"`
}

// better orders by score descending, then student ID ascending.
func better[V Number](a, b Ranked[V]) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.StudentID < b.StudentID
}

// rankedHeap implements a min-heap on better, so the root is the weakest
// entry kept so far.
type rankedHeap[V Number] []Ranked[V]

func (h rankedHeap[V]) Len() int           { return len(h) }
func (h rankedHeap[V]) Less(i, j int) bool { return better(h[j], h[i]) }
func (h rankedHeap[V]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankedHeap[V]) Push(x any) {
	*h = append(*h, x.(Ranked[V]))
}

func (h *rankedHeap[V]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// TopN returns the n highest scores in descending order. Equal scores are
// ordered by ascending student ID. A non-positive n, or one larger than the
// map, returns every entry.
func TopN[V Number](scores map[string]V, n int) []Ranked[V] {
	if n <= 0 || n > len(scores) {
		n = len(scores)
	}
	if n == 0 {
		return []Ranked[V]{}
	}

	h := make(rankedHeap[V], 0, n)
	heap.Init(&h)

	for id, score := range scores {
		r := Ranked[V]{StudentID: id, Score: score}
		if h.Len() < n {
			heap.Push(&h, r)
		} else if better(r, h[0]) {
			h[0] = r
			heap.Fix(&h, 0)
		}
	}

	out := []Ranked[V](h)
	slices.SortFunc(out, func(a, b Ranked[V]) int {
		if better(a, b) {
			return -1
		}
		if better(b, a) {
			return 1
		}
		return 0
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// rankPositions maps each student to its 1-based position in TopN order.
func rankPositions[V Number](scores map[string]V) map[string]int {
	positions := make(map[string]int, len(scores))
	for _, r := range TopN(scores, 0) {
		positions[r.StudentID] = r.Rank
	}
	return positions
}

// Metric names a centrality measure.
type Metric string

const (
	MetricDegree      Metric = "degree"
	MetricBetweenness Metric = "betweenness"
	MetricCloseness   Metric = "closeness"
	MetricEigenvector Metric = "eigenvector"
)

// Metrics lists the measures in influence-weight order.
var Metrics = []Metric{MetricDegree, MetricBetweenness, MetricCloseness, MetricEigenvector}

// ParseMetric converts a string to a Metric.
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Metrics, m) {
		return "", fmt.Errorf("unknown centrality metric %q", s)
	}
	return m, nil
}

// influenceWeight is the multiplier of each metric in the combined ranking.
var influenceWeight = map[Metric]int{
	MetricDegree:      4,
	MetricBetweenness: 3,
	MetricCloseness:   2,
	MetricEigenvector: 1,
}

// influenceTopK is how many students per metric earn points.
const influenceTopK = 5

// InfluenceContribution holds the points a student earned from each metric.
type InfluenceContribution struct {
	Degree      int `json:"degree"`
	Betweenness int `json:"betweenness"`
	Closeness   int `json:"closeness"`
	Eigenvector int `json:"eigenvector"`
}

// InfluenceScore is a student's combined influence.
type InfluenceScore struct {
	StudentID     string                `json:"student_id"`
	Total         int                   `json:"total"`
	Contributions InfluenceContribution `json:"contributions"`
}

// CentralityOptions configures ComputeAllCentrality.
type CentralityOptions struct {
	Eigenvector EigenvectorOptions
	TopN        int
}

// DefaultCentralityOptions returns default centrality configuration
func DefaultCentralityOptions() CentralityOptions {
	return CentralityOptions{
		Eigenvector: DefaultEigenvectorOptions(),
		TopN:        5,
	}
}

// CentralityResult holds every centrality vector of a graph and the top
// students of each.
type CentralityResult struct {
	Degree      map[string]int     `json:"degree"`
	Betweenness map[string]float64 `json:"betweenness"`
	Closeness   map[string]float64 `json:"closeness"`
	Eigenvector *EigenvectorResult `json:"eigenvector"`

	TopDegree      []Ranked[int]     `json:"top_degree"`
	TopBetweenness []Ranked[float64] `json:"top_betweenness"`
	TopCloseness   []Ranked[float64] `json:"top_closeness"`
	TopEigenvector []Ranked[float64] `json:"top_eigenvector"`

	Influence []InfluenceScore `json:"influence"`

	// Err is set when a metric failed to compute; its vector is all zeros.
	Err error `json:"-"`
}

// runCentrality executes the metric tasks.
var runCentrality = parallel.Run

// ComputeAllCentrality runs the four centrality measures and the combined
// influence ranking.
func ComputeAllCentrality(graph *storage.Graph, opts CentralityOptions) *CentralityResult {
	if opts.TopN <= 0 {
		opts.TopN = DefaultCentralityOptions().TopN
	}

	// The four metrics only read the graph and run side by side.
	res := &CentralityResult{}
	err := runCentrality(4,
		func() { res.Degree = DegreeCentrality(graph) },
		func() { res.Betweenness = BetweennessCentrality(graph) },
		func() { res.Closeness = ClosenessCentrality(graph) },
		func() { res.Eigenvector = EigenvectorCentrality(graph, opts.Eigenvector) },
	)
	if err != nil {
		logging.ErrorLog("centrality computation failed", logging.Students(graph.StudentCount()), logging.Error(err))
		res.Err = err
		res.fillMissing(graph)
	}
	res.TopDegree = TopN(res.Degree, opts.TopN)
	res.TopBetweenness = TopN(res.Betweenness, opts.TopN)
	res.TopCloseness = TopN(res.Closeness, opts.TopN)
	res.TopEigenvector = TopN(res.Eigenvector.Scores, opts.TopN)
	res.Influence = combine(res)
	return res
}

// fillMissing gives every metric that did not finish a zero vector.
func (res *CentralityResult) fillMissing(graph *storage.Graph) {
	ids := graph.StudentIDs()
	zeros := func() map[string]float64 {
		m := make(map[string]float64, len(ids))
		for _, id := range ids {
			m[id] = 0
		}
		return m
	}
	if res.Degree == nil {
		res.Degree = make(map[string]int, len(ids))
		for _, id := range ids {
			res.Degree[id] = 0
		}
	}
	if res.Betweenness == nil {
		res.Betweenness = zeros()
	}
	if res.Closeness == nil {
		res.Closeness = zeros()
	}
	if res.Eigenvector == nil {
		res.Eigenvector = &EigenvectorResult{Scores: zeros()}
	}
}

// CombineInfluence ranks students by points earned in the top five of each
// centrality metric. Rank r earns (6-r) times the metric weight: degree 4,
// betweenness 3, closeness 2, eigenvector 1. Students with no points are
// left out. Totals are sorted descending, then by student ID.
func CombineInfluence(graph *storage.Graph, opts CentralityOptions) []InfluenceScore {
	return ComputeAllCentrality(graph, opts).Influence
}

func combine(res *CentralityResult) []InfluenceScore {
	contributions := make(map[string]*InfluenceContribution)
	award := func(metric Metric, id string, rank int, field func(*InfluenceContribution) *int) {
		points := (influenceTopK + 1 - rank) * influenceWeight[metric]
		c, ok := contributions[id]
		if !ok {
			c = &InfluenceContribution{}
			contributions[id] = c
		}
		*field(c) += points
	}

	for _, r := range TopN(res.Degree, influenceTopK) {
		award(MetricDegree, r.StudentID, r.Rank, func(c *InfluenceContribution) *int { return &c.Degree })
	}
	for _, r := range TopN(res.Betweenness, influenceTopK) {
		award(MetricBetweenness, r.StudentID, r.Rank, func(c *InfluenceContribution) *int { return &c.Betweenness })
	}
	for _, r := range TopN(res.Closeness, influenceTopK) {
		award(MetricCloseness, r.StudentID, r.Rank, func(c *InfluenceContribution) *int { return &c.Closeness })
	}
	for _, r := range TopN(res.Eigenvector.Scores, influenceTopK) {
		award(MetricEigenvector, r.StudentID, r.Rank, func(c *InfluenceContribution) *int { return &c.Eigenvector })
	}

	out := make([]InfluenceScore, 0, len(contributions))
	for id, c := range contributions {
		total := c.Degree + c.Betweenness + c.Closeness + c.Eigenvector
		if total == 0 {
			continue
		}
		out = append(out, InfluenceScore{StudentID: id, Total: total, Contributions: *c})
	}
	slices.SortFunc(out, func(a, b InfluenceScore) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.StudentID, b.StudentID)
	})
	return out
}

// MetricRanks is a student's position under each metric.
type MetricRanks struct {
	Degree      int `json:"degree"`
	Betweenness int `json:"betweenness"`
	Closeness   int `json:"closeness"`
	Eigenvector int `json:"eigenvector"`
}

// StudentCentrality is the per-student view of a CentralityResult.
type StudentCentrality struct {
	StudentID   string      `json:"student_id"`
	Degree      int         `json:"degree"`
	Betweenness float64     `json:"betweenness"`
	Closeness   float64     `json:"closeness"`
	Eigenvector float64     `json:"eigenvector"`
	Ranks       MetricRanks `json:"ranks"`
}

// CompareStudents returns the centrality values and rank positions of the
// given students. Unknown IDs are skipped.
func (res *CentralityResult) CompareStudents(ids ...string) []StudentCentrality {
	degreeRank := rankPositions(res.Degree)
	betweennessRank := rankPositions(res.Betweenness)
	closenessRank := rankPositions(res.Closeness)
	eigenvectorRank := rankPositions(res.Eigenvector.Scores)

	out := make([]StudentCentrality, 0, len(ids))
	for _, id := range ids {
		degree, ok := res.Degree[id]
		if !ok {
			continue
		}
		out = append(out, StudentCentrality{
			StudentID:   id,
			Degree:      degree,
			Betweenness: res.Betweenness[id],
			Closeness:   res.Closeness[id],
			Eigenvector: res.Eigenvector.Scores[id],
			Ranks: MetricRanks{
				Degree:      degreeRank[id],
				Betweenness: betweennessRank[id],
				Closeness:   closenessRank[id],
				Eigenvector: eigenvectorRank[id],
			},
		})
	}
	return out
}

// Top returns the ranked list for a metric as float scores.
func (res *CentralityResult) Top(metric Metric) []Ranked[float64] {
	switch metric {
	case MetricDegree:
		out := make([]Ranked[float64], 0, len(res.TopDegree))
		for _, r := range res.TopDegree {
			out = append(out, Ranked[float64]{StudentID: r.StudentID, Score: float64(r.Score), Rank: r.Rank})
		}
		return out
	case MetricBetweenness:
		return res.TopBetweenness
	case MetricCloseness:
		return res.TopCloseness
	case MetricEigenvector:
		return res.TopEigenvector
	default:
		return nil
	}
}
