package graphql

import (
	"context"

	"github.com/graphql-go/graphql"
)

// Execute runs the request against schema. Resolvers see ctx.
func (req GraphQLRequest) Execute(ctx context.Context, schema graphql.Schema) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}
