// Package report turns a graph and its analytics into a text or JSON report.
// Building a report never mutates the graph.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/socialgraph/pkg/algorithms"
	"github.com/dd0wney/socialgraph/pkg/storage"
)

// Options controls what a report includes.
type Options struct {
	TopPerMetric int // entries per metric ranking
	InfluenceTop int // entries in the influence ranking
	Centrality   algorithms.CentralityOptions
	Community    algorithms.CommunityOptions
}

// DefaultOptions returns the top-3 rankings and top-10 influence list.
func DefaultOptions() Options {
	return Options{
		TopPerMetric: 3,
		InfluenceTop: 10,
		Centrality:   algorithms.DefaultCentralityOptions(),
		Community:    algorithms.DefaultCommunityOptions(),
	}
}

// Entry is one position of a ranking.
type Entry struct {
	Rank      int     `json:"rank"`
	StudentID string  `json:"student_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Score     float64 `json:"score"`
}

// MetricRanking is the top list of one centrality metric.
type MetricRanking struct {
	Metric  algorithms.Metric `json:"metric"`
	Entries []Entry           `json:"entries"`
}

// Row is one line of the detailed centrality table.
type Row struct {
	StudentID   string  `json:"student_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Degree      int     `json:"degree"`
	Betweenness float64 `json:"betweenness"`
	Closeness   float64 `json:"closeness"`
	Eigenvector float64 `json:"eigenvector"`
}

// InfluenceEntry is a student of the combined influence ranking.
type InfluenceEntry struct {
	Rank          int                              `json:"rank"`
	StudentID     string                           `json:"student_id"`
	Name          string                           `json:"name"`
	Total         int                              `json:"total"`
	Contributions algorithms.InfluenceContribution `json:"contributions"`
}

// CommunityEntry summarises one detected community.
type CommunityEntry struct {
	ID               int      `json:"id"`
	Size             int      `json:"size"`
	Density          float64  `json:"density"`
	InternalEdges    int      `json:"internal_edges"`
	DominantCategory string   `json:"dominant_category"`
	Members          []string `json:"members"`
}

// Report is a snapshot of the network and its analytics.
type Report struct {
	ID                  string             `json:"id"`
	GeneratedAt         time.Time          `json:"generated_at"`
	Summary             storage.Statistics `json:"summary"`
	AverageClustering   float64            `json:"average_clustering"`
	Rankings            []MetricRanking    `json:"rankings"`
	Table               []Row              `json:"table"`
	Influence           []InfluenceEntry   `json:"influence"`
	Communities         []CommunityEntry   `json:"communities"`
	CommunityMethod     string             `json:"community_method"`
	CommunityFallback   string             `json:"community_fallback,omitempty"`
	Modularity          float64            `json:"modularity"`
	EigenvectorFallback bool               `json:"eigenvector_fallback"`
}

// Build computes every analytic and assembles the report.
func Build(g *storage.Graph, opts Options, now time.Time) *Report {
	if opts.TopPerMetric <= 0 {
		opts.TopPerMetric = DefaultOptions().TopPerMetric
	}
	if opts.InfluenceTop <= 0 {
		opts.InfluenceTop = DefaultOptions().InfluenceTop
	}

	centrality := algorithms.ComputeAllCentrality(g, opts.Centrality)
	communities := algorithms.DetectCommunities(g, opts.Community)
	return Assemble(g, centrality, communities, opts, now)
}

// Assemble builds a report from analytics that were already computed.
func Assemble(g *storage.Graph, centrality *algorithms.CentralityResult, communities *algorithms.CommunityDetectionResult, opts Options, now time.Time) *Report {
	r := &Report{
		ID:                  uuid.NewString(),
		GeneratedAt:         now.UTC(),
		Summary:             g.GetStatistics(),
		AverageClustering:   algorithms.AverageClusteringCoefficient(g),
		CommunityMethod:     string(communities.Method),
		CommunityFallback:   communities.FallbackReason,
		Modularity:          communities.Modularity,
		EigenvectorFallback: centrality.Eigenvector.Fallback,
	}

	students := make(map[string]storage.Student, g.StudentCount())
	for _, s := range g.Students() {
		students[s.ID] = s
	}

	for _, metric := range algorithms.Metrics {
		ranking := MetricRanking{Metric: metric, Entries: []Entry{}}
		for _, ranked := range algorithms.TopN(scores(centrality, metric), opts.TopPerMetric) {
			s := students[ranked.StudentID]
			ranking.Entries = append(ranking.Entries, Entry{
				Rank:      ranked.Rank,
				StudentID: s.ID,
				Name:      s.Name,
				Category:  s.Category,
				Score:     ranked.Score,
			})
		}
		r.Rankings = append(r.Rankings, ranking)
	}

	r.Table = buildTable(g, centrality)

	r.Influence = make([]InfluenceEntry, 0, opts.InfluenceTop)
	for i, inf := range centrality.Influence {
		if i == opts.InfluenceTop {
			break
		}
		r.Influence = append(r.Influence, InfluenceEntry{
			Rank:          i + 1,
			StudentID:     inf.StudentID,
			Name:          students[inf.StudentID].Name,
			Total:         inf.Total,
			Contributions: inf.Contributions,
		})
	}

	stats := algorithms.CommunityStatistics(g, communities.NodeCommunity)
	r.Communities = make([]CommunityEntry, 0, len(communities.Communities))
	for _, c := range communities.Communities {
		entry := CommunityEntry{ID: c.ID, Size: c.Size, Density: c.Density, Members: c.Members}
		if cs, ok := stats[c.ID]; ok {
			entry.InternalEdges = cs.InternalEdges
			entry.DominantCategory, _ = cs.DominantCategory()
		}
		r.Communities = append(r.Communities, entry)
	}

	return r
}

// scores widens any metric to float64 for ranking.
func scores(res *algorithms.CentralityResult, metric algorithms.Metric) map[string]float64 {
	switch metric {
	case algorithms.MetricDegree:
		out := make(map[string]float64, len(res.Degree))
		for id, d := range res.Degree {
			out[id] = float64(d)
		}
		return out
	case algorithms.MetricBetweenness:
		return res.Betweenness
	case algorithms.MetricCloseness:
		return res.Closeness
	default:
		return res.Eigenvector.Scores
	}
}

// buildTable lists every student by degree, highest first. Equal degrees keep
// insertion order.
func buildTable(g *storage.Graph, res *algorithms.CentralityResult) []Row {
	rows := make([]Row, 0, g.StudentCount())
	for _, s := range g.Students() {
		rows = append(rows, Row{
			StudentID:   s.ID,
			Name:        s.Name,
			Category:    s.Category,
			Degree:      res.Degree[s.ID],
			Betweenness: res.Betweenness[s.ID],
			Closeness:   res.Closeness[s.ID],
			Eigenvector: res.Eigenvector.Scores[s.ID],
		})
	}
	sortRowsByDegree(rows)
	return rows
}
