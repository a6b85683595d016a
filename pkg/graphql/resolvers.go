package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/socialgraph/pkg/algorithms"
	"github.com/dd0wney/socialgraph/pkg/service"
	"github.com/dd0wney/socialgraph/pkg/visualization"
)

const (
	defaultRecommendations = 5
	defaultInfluence       = 10
	defaultCanvasWidth     = 800
	defaultCanvasHeight    = 600
)

func queryFields(svc *service.Service, t *types) graphql.Fields {
	return graphql.Fields{
		"health": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return "ok", nil
			},
		},
		"students": &graphql.Field{
			Type: graphql.NewList(t.student),
			Args: graphql.FieldConfigArgument{"search": stringArg()},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				if q := argString(p, "search"); q != "" {
					return svc.Search(q), nil
				}
				return svc.Students(), nil
			},
		},
		"student": &graphql.Field{
			Type: t.student,
			Args: graphql.FieldConfigArgument{"id": idArg()},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return svc.Student(argString(p, "id"))
			},
		},
		"friends": &graphql.Field{
			Type: graphql.NewList(t.friend),
			Args: graphql.FieldConfigArgument{"id": idArg()},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return svc.Friends(argString(p, "id"))
			},
		},
		"bfs": &graphql.Field{
			Type: graphql.NewList(graphql.String),
			Args: graphql.FieldConfigArgument{"start": idArg()},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return svc.BFS(argString(p, "start")), nil
			},
		},
		"dfs": &graphql.Field{
			Type: graphql.NewList(graphql.String),
			Args: graphql.FieldConfigArgument{"start": idArg()},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return svc.DFS(argString(p, "start")), nil
			},
		},
		"shortestPath": &graphql.Field{
			Type: t.path,
			Args: graphql.FieldConfigArgument{
				"from":     idArg(),
				"to":       idArg(),
				"weighted": &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
			},
			Resolve: resolveShortestPath(svc),
		},
		"recommendations": &graphql.Field{
			Type: graphql.NewList(t.recommendation),
			Args: graphql.FieldConfigArgument{
				"id":    idArg(),
				"limit": intArg(defaultRecommendations),
				"by":    &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "mutual"},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				id := argString(p, "id")
				limit := argInt(p, "limit", defaultRecommendations)
				switch by := argString(p, "by"); by {
				case "", "mutual":
					return svc.Recommend(id, limit), nil
				case "interests":
					return svc.RecommendByInterests(id, limit), nil
				default:
					return nil, fmt.Errorf("unknown recommendation strategy %q (use mutual or interests)", by)
				}
			},
		},
		"communities": &graphql.Field{
			Type: t.communityResult,
			Args: graphql.FieldConfigArgument{"method": stringArg()},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				var method algorithms.CommunityMethod
				if raw := argString(p, "method"); raw != "" {
					m, err := algorithms.ParseCommunityMethod(raw)
					if err != nil {
						return nil, err
					}
					method = m
				}
				return svc.Communities(method), nil
			},
		},
		"centrality": &graphql.Field{
			Type: t.centrality,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return svc.Centrality(), nil
			},
		},
		"compare": &graphql.Field{
			Type: graphql.NewList(t.studentCentrality),
			Args: graphql.FieldConfigArgument{
				"ids": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return svc.CompareStudents(argStrings(p, "ids")...), nil
			},
		},
		"influence": &graphql.Field{
			Type: graphql.NewList(t.influence),
			Args: graphql.FieldConfigArgument{"limit": intArg(defaultInfluence)},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return svc.Influence(argInt(p, "limit", defaultInfluence)), nil
			},
		},
		"statistics": &graphql.Field{
			Type: t.statistics,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return svc.Statistics(), nil
			},
		},
		"clustering": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				_, avg := svc.Clustering()
				return avg, nil
			},
		},
		"layout": &graphql.Field{
			Type: t.layout,
			Args: graphql.FieldConfigArgument{
				"kind":   &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: string(visualization.KindSpring)},
				"width":  &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: float64(defaultCanvasWidth)},
				"height": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: float64(defaultCanvasHeight)},
				"seed":   intArg(1),
			},
			Resolve: resolveLayout(svc),
		},
	}
}

func resolveShortestPath(svc *service.Service) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		from, to := argString(p, "from"), argString(p, "to")
		if weighted, _ := p.Args["weighted"].(bool); weighted {
			path, cost, err := svc.WeightedShortestPath(from, to)
			if err != nil {
				return nil, err
			}
			return pathResult{Students: path, Hops: len(path) - 1, Cost: cost}, nil
		}

		path, err := svc.ShortestPath(from, to)
		if err != nil {
			return nil, err
		}
		return pathResult{Students: path, Hops: len(path) - 1, Cost: len(path) - 1}, nil
	}
}

func resolveLayout(svc *service.Service) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		cfg := &visualization.LayoutConfig{
			Width:  defaultCanvasWidth,
			Height: defaultCanvasHeight,
			Seed:   uint64(max(argInt(p, "seed", 1), 0)),
		}
		if w, ok := p.Args["width"].(float64); ok && w > 0 {
			cfg.Width = w
		}
		if h, ok := p.Args["height"].(float64); ok && h > 0 {
			cfg.Height = h
		}

		viz, err := svc.Layout(argString(p, "kind"), cfg)
		if err != nil {
			return nil, err
		}
		return viz.Data(), nil
	}
}
