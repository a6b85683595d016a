package service

import (
	"github.com/dd0wney/socialgraph/pkg/algorithms"
	"github.com/dd0wney/socialgraph/pkg/logging"
	"github.com/dd0wney/socialgraph/pkg/report"
	"github.com/dd0wney/socialgraph/pkg/storage"
	"github.com/dd0wney/socialgraph/pkg/visualization"
)

// BFS returns the breadth-first visit order from start.
func (s *Service) BFS(start string) []string {
	var order []string
	s.analyse("bfs", func(g *storage.Graph) { order = algorithms.BFS(g, start) })
	return order
}

// DFS returns the depth-first visit order from start.
func (s *Service) DFS(start string) []string {
	var order []string
	s.analyse("dfs", func(g *storage.Graph) { order = algorithms.DFS(g, start) })
	return order
}

// ShortestPath returns a fewest-hops path between two students.
func (s *Service) ShortestPath(from, to string) ([]string, error) {
	var (
		path []string
		err  error
	)
	s.analyse("shortest_path", func(g *storage.Graph) { path, err = algorithms.ShortestPath(g, from, to) })
	return path, err
}

// WeightedShortestPath returns the path of least total weight and its cost.
func (s *Service) WeightedShortestPath(from, to string) ([]string, int, error) {
	var (
		path []string
		cost int
		err  error
	)
	s.analyse("weighted_shortest_path", func(g *storage.Graph) {
		path, cost, err = algorithms.WeightedShortestPath(g, from, to)
	})
	return path, cost, err
}

// Recommend suggests friends by mutual friends.
func (s *Service) Recommend(id string, limit int) []algorithms.Recommendation {
	var recs []algorithms.Recommendation
	s.analyse("recommend_mutual", func(g *storage.Graph) { recs = algorithms.RecommendByMutualFriends(g, id, limit) })
	return recs
}

// RecommendByInterests suggests friends by shared interests.
func (s *Service) RecommendByInterests(id string, limit int) []algorithms.Recommendation {
	var recs []algorithms.Recommendation
	s.analyse("recommend_interests", func(g *storage.Graph) { recs = algorithms.RecommendByInterests(g, id, limit) })
	return recs
}

// Communities partitions the network. An empty method uses the configured
// default.
func (s *Service) Communities(method algorithms.CommunityMethod) *algorithms.CommunityDetectionResult {
	opts := s.community
	if method != "" {
		opts.Method = method
	}

	var res *algorithms.CommunityDetectionResult
	s.analyse("communities", func(g *storage.Graph) { res = algorithms.DetectCommunities(g, opts) })
	s.recordCommunities(res)
	return res
}

// Centrality computes every centrality measure and the influence ranking.
func (s *Service) Centrality() *algorithms.CentralityResult {
	var res *algorithms.CentralityResult
	s.analyse("centrality", func(g *storage.Graph) { res = algorithms.ComputeAllCentrality(g, s.centrality) })
	s.recordEigenvector(res.Eigenvector)
	return res
}

// Influence returns the combined influence ranking truncated to limit. A
// non-positive limit returns everyone who scored.
func (s *Service) Influence(limit int) []algorithms.InfluenceScore {
	influence := s.Centrality().Influence
	if limit > 0 && len(influence) > limit {
		influence = influence[:limit]
	}
	return influence
}

// CompareStudents puts the centrality values and ranks of ids side by side.
func (s *Service) CompareStudents(ids ...string) []algorithms.StudentCentrality {
	return s.Centrality().CompareStudents(ids...)
}

// Clustering returns the local clustering coefficients and their mean.
func (s *Service) Clustering() (map[string]float64, float64) {
	var (
		local   map[string]float64
		average float64
	)
	s.analyse("clustering", func(g *storage.Graph) {
		local = algorithms.ClusteringCoefficient(g)
		average = algorithms.AverageClusteringCoefficient(g)
	})
	return local, average
}

// Report builds the full network report.
func (s *Service) Report(opts report.Options) *report.Report {
	if opts.Centrality == (algorithms.CentralityOptions{}) {
		opts.Centrality = s.centrality
	}
	if opts.Community == (algorithms.CommunityOptions{}) {
		opts.Community = s.community
	}

	var r *report.Report
	s.analyse("report", func(g *storage.Graph) { r = report.Build(g, opts, s.now()) })
	if r.EigenvectorFallback {
		s.recordEigenvectorFallback()
	}
	s.logger.Info("report built",
		logging.String("report_id", r.ID),
		logging.Students(r.Summary.StudentCount))
	return r
}

// StudentReport describes one student.
func (s *Service) StudentReport(id string) (*report.StudentReport, error) {
	var (
		sr  *report.StudentReport
		err error
	)
	s.analyse("student_report", func(g *storage.Graph) {
		centrality := algorithms.ComputeAllCentrality(g, s.centrality)
		communities := algorithms.DetectCommunities(g, s.community)
		sr, err = report.BuildStudent(g, id, centrality, communities)
	})
	return sr, err
}

// Layout positions every student with the named layout and colours them by
// community.
func (s *Service) Layout(kind string, cfg *visualization.LayoutConfig) (*visualization.Visualization, error) {
	layout, err := visualization.NewLayout(kind, cfg)
	if err != nil {
		return nil, err
	}
	communities := s.Communities("")

	var viz *visualization.Visualization
	s.analyse("layout", func(g *storage.Graph) {
		viz, err = visualization.Build(g, layout, communities.NodeCommunity)
	})
	return viz, err
}

func (s *Service) recordCommunities(res *algorithms.CommunityDetectionResult) {
	if res.Fallback {
		s.logger.Warn("community detection fell back",
			logging.Method(string(res.Method)),
			logging.String("reason", res.FallbackReason))
	}
	if s.metrics != nil {
		s.metrics.RecordCommunities(len(res.Communities), res.Modularity, res.Fallback)
	}
}

func (s *Service) recordEigenvector(res *algorithms.EigenvectorResult) {
	if res.Fallback {
		s.logger.Warn("eigenvector centrality did not converge", logging.Error(res.Err))
		s.recordEigenvectorFallback()
	}
}

func (s *Service) recordEigenvectorFallback() {
	if s.metrics != nil {
		s.metrics.RecordEigenvectorFallback()
	}
}
