package service

import (
	"github.com/dd0wney/socialgraph/pkg/algorithms"
	"github.com/dd0wney/socialgraph/pkg/config"
)

// WithAnalytics applies the analytics section of the configuration. An
// unknown community method keeps the default.
func WithAnalytics(cfg config.AnalyticsConfig) Option {
	return func(s *Service) {
		s.centrality = algorithms.CentralityOptions{
			TopN: cfg.TopN,
			Eigenvector: algorithms.EigenvectorOptions{
				MaxIterations: cfg.EigenvectorMaxIter,
				Tolerance:     cfg.EigenvectorTolerance,
			},
		}
		if method, err := algorithms.ParseCommunityMethod(cfg.CommunityMethod); err == nil {
			s.community.Method = method
		}
	}
}
