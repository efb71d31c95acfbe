// Package graph is the GraphQL adapter: a schema whose resolvers are thin
// translations onto the todo service, mirroring the REST surface.
package graph

import (
	"errors"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"todoapp/internal/models"
	"todoapp/internal/todo"
)

// uuidScalar is the UUID scalar used for todo ids.
var uuidScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "UUID",
	Description: "An RFC 4122 UUID serialized as a string.",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case uuid.UUID:
			return v.String()
		case *uuid.UUID:
			if v == nil {
				return nil
			}
			return v.String()
		case string:
			return v
		}
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil
		}
		return id
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		sv, ok := valueAST.(*ast.StringValue)
		if !ok {
			return nil
		}
		id, err := uuid.Parse(sv.Value)
		if err != nil {
			return nil
		}
		return id
	},
})

var todoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TodoItem",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(uuidScalar)},
		"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"isCompleted": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"completedAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var createInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "TodoCreateInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"isCompleted": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
	},
})

var updateInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "TodoUpdateInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"isCompleted": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
	},
})

// NewSchema builds the executable schema over the shared todo service.
func NewSchema(svc todo.API) (graphql.Schema, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"todos": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(todoType))),
				Args: graphql.FieldConfigArgument{
					"isCompleted": &graphql.ArgumentConfig{Type: graphql.Boolean},
					"search":      &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var filter models.ListFilter
					if v, ok := p.Args["isCompleted"].(bool); ok {
						filter.IsCompleted = &v
					}
					if v, ok := p.Args["search"].(string); ok {
						filter.Search = v
					}
					return svc.List(p.Context, filter)
				},
			},
			"todo": &graphql.Field{
				Type: todoType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidScalar)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := p.Args["id"].(uuid.UUID)
					if !ok {
						return nil, nil
					}
					item, err := svc.Get(p.Context, id)
					if errors.Is(err, todo.ErrNotFound) {
						// The single-item query is nullable.
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return item, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createTodo": &graphql.Field{
				Type: graphql.NewNonNull(todoType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input, _ := p.Args["input"].(map[string]interface{})
					title, _ := input["title"].(string)
					isCompleted, _ := input["isCompleted"].(bool)

					item, err := svc.Create(p.Context, title, isCompleted)
					if err != nil {
						return nil, wrapServiceError(err, uuid.Nil)
					}
					return item, nil
				},
			},
			"updateTodo": &graphql.Field{
				Type: graphql.NewNonNull(todoType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidScalar)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := p.Args["id"].(uuid.UUID)
					if !ok {
						return nil, notFoundError(uuid.Nil)
					}
					input, _ := p.Args["input"].(map[string]interface{})

					var patch models.UpdatePatch
					if v, ok := input["title"].(string); ok {
						patch.Title = &v
					}
					if v, ok := input["isCompleted"].(bool); ok {
						patch.IsCompleted = &v
					}

					item, err := svc.Update(p.Context, id, patch)
					if err != nil {
						return nil, wrapServiceError(err, id)
					}
					return item, nil
				},
			},
			"deleteTodo": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidScalar)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := p.Args["id"].(uuid.UUID)
					if !ok {
						return nil, notFoundError(uuid.Nil)
					}
					if err := svc.Delete(p.Context, id); err != nil {
						return nil, wrapServiceError(err, id)
					}
					return true, nil
				},
			},
			"deleteCompletedTodos": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return svc.DeleteCompleted(p.Context)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
