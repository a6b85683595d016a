package report

import (
	"github.com/dd0wney/socialgraph/pkg/algorithms"
	"github.com/dd0wney/socialgraph/pkg/storage"
)

// Friend is one entry of a student's friend list.
type Friend struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Weight   storage.Weight `json:"weight"`
}

// StudentReport describes a single student.
type StudentReport struct {
	Student         storage.Student              `json:"student"`
	Friends         []Friend                     `json:"friends"`
	Centrality      algorithms.StudentCentrality `json:"centrality"`
	Community       int                          `json:"community"`
	Recommendations []algorithms.Recommendation  `json:"recommendations"`
}

// recommendationsPerStudent bounds StudentReport.Recommendations
const recommendationsPerStudent = 5

// BuildStudent reports on one student using precomputed analytics.
func BuildStudent(g *storage.Graph, id string, centrality *algorithms.CentralityResult, communities *algorithms.CommunityDetectionResult) (*StudentReport, error) {
	s, err := g.Student(id)
	if err != nil {
		return nil, err
	}

	sr := &StudentReport{
		Student:         s,
		Friends:         make([]Friend, 0, g.Degree(id)),
		Community:       -1,
		Recommendations: algorithms.RecommendByMutualFriends(g, id, recommendationsPerStudent),
	}

	g.ForEachNeighbor(id, func(neighbor string, w storage.Weight) bool {
		friend, err := g.Student(neighbor)
		if err == nil {
			sr.Friends = append(sr.Friends, Friend{ID: friend.ID, Name: friend.Name, Category: friend.Category, Weight: w})
		}
		return true
	})

	if cmp := centrality.CompareStudents(id); len(cmp) == 1 {
		sr.Centrality = cmp[0]
	}
	if label, ok := communities.NodeCommunity[id]; ok {
		sr.Community = label
	}
	return sr, nil
}
