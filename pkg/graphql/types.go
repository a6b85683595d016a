package graphql

import (
	"slices"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/socialgraph/pkg/algorithms"
	"github.com/dd0wney/socialgraph/pkg/report"
	"github.com/dd0wney/socialgraph/pkg/service"
	"github.com/dd0wney/socialgraph/pkg/storage"
)

// weightField resolves a storage.Weight as an Int. The default resolver
// cannot coerce named integer types.
func weightField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewNonNull(graphql.Int),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			switch src := p.Source.(type) {
			case storage.Friendship:
				return int(src.Weight), nil
			case *storage.Friendship:
				return int(src.Weight), nil
			case report.Friend:
				return int(src.Weight), nil
			case weightCount:
				return int(src.Weight), nil
			}
			return nil, nil
		},
	}
}

// metricIntFields has one Int per centrality metric.
func metricIntFields() graphql.Fields {
	return graphql.Fields{
		"degree":      &graphql.Field{Type: graphql.Int},
		"betweenness": &graphql.Field{Type: graphql.Int},
		"closeness":   &graphql.Field{Type: graphql.Int},
		"eigenvector": &graphql.Field{Type: graphql.Int},
	}
}

type weightCount struct {
	Weight storage.Weight
	Count  int
}

// types holds every object type of the schema. Types are built once per
// schema because graphql-go rejects duplicate type names.
type types struct {
	student           *graphql.Object
	friend            *graphql.Object
	friendship        *graphql.Object
	recommendation    *graphql.Object
	ranked            *graphql.Object
	contributions     *graphql.Object
	influence         *graphql.Object
	ranks             *graphql.Object
	studentCentrality *graphql.Object
	centrality        *graphql.Object
	community         *graphql.Object
	communityResult   *graphql.Object
	statistics        *graphql.Object
	path              *graphql.Object
	layout            *graphql.Object
	deleteResult      *graphql.Object
}

func newTypes(svc *service.Service) *types {
	t := &types{}

	t.friend = graphql.NewObject(graphql.ObjectConfig{
		Name: "Friend",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":     &graphql.Field{Type: graphql.String},
			"category": &graphql.Field{Type: graphql.String},
			"weight":   weightField(),
		},
	})

	t.student = graphql.NewObject(graphql.ObjectConfig{
		Name: "Student",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.String},
			"category":  &graphql.Field{Type: graphql.String},
			"interests": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"friends": &graphql.Field{
				Type: graphql.NewList(t.friend),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					st, ok := p.Source.(storage.Student)
					if !ok {
						return nil, nil
					}
					return svc.Friends(st.ID)
				},
			},
		},
	})

	t.friendship = graphql.NewObject(graphql.ObjectConfig{
		Name: "Friendship",
		Fields: graphql.Fields{
			"id1":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"id2":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"weight": weightField(),
		},
	})

	t.recommendation = graphql.NewObject(graphql.ObjectConfig{
		Name: "Recommendation",
		Fields: graphql.Fields{
			"studentId":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"score":           &graphql.Field{Type: graphql.Float},
			"mutualFriends":   &graphql.Field{Type: graphql.NewList(graphql.String)},
			"sharedInterests": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"sameCategory":    &graphql.Field{Type: graphql.Boolean},
		},
	})

	t.ranked = graphql.NewObject(graphql.ObjectConfig{
		Name: "RankedStudent",
		Fields: graphql.Fields{
			"studentId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"score":     &graphql.Field{Type: graphql.Float},
			"rank":      &graphql.Field{Type: graphql.Int},
		},
	})

	t.contributions = graphql.NewObject(graphql.ObjectConfig{Name: "InfluenceContributions", Fields: metricIntFields()})
	t.ranks = graphql.NewObject(graphql.ObjectConfig{Name: "MetricRanks", Fields: metricIntFields()})

	t.influence = graphql.NewObject(graphql.ObjectConfig{
		Name: "Influence",
		Fields: graphql.Fields{
			"studentId":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"total":         &graphql.Field{Type: graphql.Int},
			"contributions": &graphql.Field{Type: t.contributions},
		},
	})

	t.studentCentrality = graphql.NewObject(graphql.ObjectConfig{
		Name: "StudentCentrality",
		Fields: graphql.Fields{
			"studentId":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"degree":      &graphql.Field{Type: graphql.Int},
			"betweenness": &graphql.Field{Type: graphql.Float},
			"closeness":   &graphql.Field{Type: graphql.Float},
			"eigenvector": &graphql.Field{Type: graphql.Float},
			"ranks":       &graphql.Field{Type: t.ranks},
		},
	})

	t.centrality = graphql.NewObject(graphql.ObjectConfig{
		Name: "Centrality",
		Fields: graphql.Fields{
			"topDegree":      &graphql.Field{Type: graphql.NewList(t.ranked)},
			"topBetweenness": &graphql.Field{Type: graphql.NewList(t.ranked)},
			"topCloseness":   &graphql.Field{Type: graphql.NewList(t.ranked)},
			"topEigenvector": &graphql.Field{Type: graphql.NewList(t.ranked)},
			"influence":      &graphql.Field{Type: graphql.NewList(t.influence)},
			"eigenvectorFallback": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if res, ok := p.Source.(*algorithms.CentralityResult); ok {
						return res.Eigenvector.Fallback, nil
					}
					return nil, nil
				},
			},
		},
	})

	t.community = graphql.NewObject(graphql.ObjectConfig{
		Name: "Community",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.Int},
			"members": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"size":    &graphql.Field{Type: graphql.Int},
			"density": &graphql.Field{Type: graphql.Float},
		},
	})

	t.communityResult = graphql.NewObject(graphql.ObjectConfig{
		Name: "CommunityResult",
		Fields: graphql.Fields{
			"communities":    &graphql.Field{Type: graphql.NewList(t.community)},
			"modularity":     &graphql.Field{Type: graphql.Float},
			"method":         &graphql.Field{Type: graphql.String},
			"fallback":       &graphql.Field{Type: graphql.Boolean},
			"fallbackReason": &graphql.Field{Type: graphql.String},
		},
	})

	categoryCount := graphql.NewObject(graphql.ObjectConfig{
		Name: "CategoryCount",
		Fields: graphql.Fields{
			"category": &graphql.Field{Type: graphql.String},
			"count":    &graphql.Field{Type: graphql.Int},
		},
	})
	popular := graphql.NewObject(graphql.ObjectConfig{
		Name: "PopularStudent",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":    &graphql.Field{Type: graphql.String},
			"friends": &graphql.Field{Type: graphql.Int},
		},
	})
	weightCountType := graphql.NewObject(graphql.ObjectConfig{
		Name: "WeightCount",
		Fields: graphql.Fields{
			"weight": weightField(),
			"count":  &graphql.Field{Type: graphql.Int},
		},
	})
	t.statistics = graphql.NewObject(graphql.ObjectConfig{
		Name: "Statistics",
		Fields: graphql.Fields{
			"studentCount":     &graphql.Field{Type: graphql.Int},
			"friendshipCount":  &graphql.Field{Type: graphql.Int},
			"averageFriends":   &graphql.Field{Type: graphql.Float},
			"density":          &graphql.Field{Type: graphql.Float},
			"isolatedStudents": &graphql.Field{Type: graphql.Int},
			"byCategory":       &graphql.Field{Type: graphql.NewList(categoryCount)},
			"mostPopular":      &graphql.Field{Type: graphql.NewList(popular)},
			"weightDistribution": &graphql.Field{
				Type: graphql.NewList(weightCountType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					stats, ok := p.Source.(storage.Statistics)
					if !ok {
						return nil, nil
					}
					out := make([]weightCount, 0, len(stats.WeightDistribution))
					for w, n := range stats.WeightDistribution {
						out = append(out, weightCount{Weight: w, Count: n})
					}
					slices.SortFunc(out, func(a, b weightCount) int { return int(a.Weight - b.Weight) })
					return out, nil
				},
			},
		},
	})

	t.path = graphql.NewObject(graphql.ObjectConfig{
		Name: "Path",
		Fields: graphql.Fields{
			"students": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"hops":     &graphql.Field{Type: graphql.Int},
			"cost":     &graphql.Field{Type: graphql.Int},
		},
	})

	positioned := graphql.NewObject(graphql.ObjectConfig{
		Name: "PositionedStudent",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.String},
			"category":  &graphql.Field{Type: graphql.String},
			"community": &graphql.Field{Type: graphql.Int},
			"x":         &graphql.Field{Type: graphql.Float},
			"y":         &graphql.Field{Type: graphql.Float},
		},
	})
	link := graphql.NewObject(graphql.ObjectConfig{
		Name: "Link",
		Fields: graphql.Fields{
			"from":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"to":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"weight": &graphql.Field{Type: graphql.Int},
		},
	})
	t.layout = graphql.NewObject(graphql.ObjectConfig{
		Name: "Layout",
		Fields: graphql.Fields{
			"students":    &graphql.Field{Type: graphql.NewList(positioned)},
			"friendships": &graphql.Field{Type: graphql.NewList(link)},
		},
	})

	t.deleteResult = graphql.NewObject(graphql.ObjectConfig{
		Name: "DeleteResult",
		Fields: graphql.Fields{
			"success": &graphql.Field{Type: graphql.Boolean},
			"id":      &graphql.Field{Type: graphql.ID},
		},
	})

	return t
}

// pathResult is the source of the Path type.
type pathResult struct {
	Students []string
	Hops     int
	Cost     int
}

// deleteResult is the source of the DeleteResult type.
type deleteResult struct {
	Success bool
	ID      string
}
