package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/dd0wney/socialgraph/pkg/service"
	"github.com/dd0wney/socialgraph/pkg/storage"
	"github.com/dd0wney/socialgraph/pkg/validation"
)

func mutationFields(svc *service.Service, t *types) graphql.Fields {
	return graphql.Fields{
		"addStudent": &graphql.Field{
			Type: t.student,
			Args: graphql.FieldConfigArgument{
				"id":        idArg(),
				"name":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"category":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"interests": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				req := validation.StudentRequest{
					ID:        argString(p, "id"),
					Name:      argString(p, "name"),
					Category:  argString(p, "category"),
					Interests: argStrings(p, "interests"),
				}
				if err := svc.AddStudent(req); err != nil {
					return nil, err
				}
				return svc.Student(req.ID)
			},
		},
		"updateStudent": &graphql.Field{
			Type: t.student,
			Args: graphql.FieldConfigArgument{
				"id":       idArg(),
				"name":     stringArg(),
				"category": stringArg(),
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				id := argString(p, "id")
				if err := svc.UpdateStudent(id, argString(p, "name"), argString(p, "category")); err != nil {
					return nil, err
				}
				return svc.Student(id)
			},
		},
		"removeStudent": &graphql.Field{
			Type: t.deleteResult,
			Args: graphql.FieldConfigArgument{"id": idArg()},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				id := argString(p, "id")
				if err := svc.RemoveStudent(id); err != nil {
					return nil, err
				}
				return deleteResult{Success: true, ID: id}, nil
			},
		},
		"addInterest": &graphql.Field{
			Type: t.student,
			Args: graphql.FieldConfigArgument{
				"id":       idArg(),
				"interest": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				id := argString(p, "id")
				if err := svc.AddInterest(id, argString(p, "interest")); err != nil {
					return nil, err
				}
				return svc.Student(id)
			},
		},
		"removeInterest": &graphql.Field{
			Type: t.student,
			Args: graphql.FieldConfigArgument{
				"id":       idArg(),
				"interest": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				id := argString(p, "id")
				if err := svc.RemoveInterest(id, argString(p, "interest")); err != nil {
					return nil, err
				}
				return svc.Student(id)
			},
		},
		"addFriendship": &graphql.Field{
			Type: t.friendship,
			Args: friendshipArgs(),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				req := validation.FriendshipRequest{
					StudentA: argString(p, "id1"),
					StudentB: argString(p, "id2"),
					Weight:   argInt(p, "weight", int(storage.WeightNormal)),
				}
				if err := svc.AddFriendship(req); err != nil {
					return nil, err
				}
				return storage.Friendship{A: req.StudentA, B: req.StudentB, Weight: storage.Weight(req.Weight)}, nil
			},
		},
		"updateFriendship": &graphql.Field{
			Type: t.friendship,
			Args: friendshipArgs(),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				a, b := argString(p, "id1"), argString(p, "id2")
				w := storage.Weight(argInt(p, "weight", int(storage.WeightNormal)))
				if err := svc.UpdateFriendshipWeight(a, b, w); err != nil {
					return nil, err
				}
				return storage.Friendship{A: a, B: b, Weight: w}, nil
			},
		},
		"removeFriendship": &graphql.Field{
			Type: t.deleteResult,
			Args: graphql.FieldConfigArgument{"id1": idArg(), "id2": idArg()},
			Resolve: func(p graphql.ResolveParams) (any, error) {
				a, b := argString(p, "id1"), argString(p, "id2")
				if err := svc.RemoveFriendship(a, b); err != nil {
					return nil, err
				}
				return deleteResult{Success: true, ID: a + "-" + b}, nil
			},
		},
	}
}

func friendshipArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id1":    idArg(),
		"id2":    idArg(),
		"weight": intArg(int(storage.WeightNormal)),
	}
}
