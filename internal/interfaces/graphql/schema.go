// Package graphql expone el inventario por GraphQL (graph-gophers/graphql-go) sobre los
// mismos casos de uso que la API REST.
package graphql

import (
	"context"

	_ "embed"

	gql "github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphqls
var schemaSDL string

type contextKey string

const ctxKeyActor contextKey = "actorID"

// WithActor adjunta el usuario autenticado al contexto de la petición.
func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, ctxKeyActor, actorID)
}

// ActorFromContext devuelve el usuario autenticado o "" si la petición es anónima.
func ActorFromContext(ctx context.Context) string {
	s, _ := ctx.Value(ctxKeyActor).(string)
	return s
}

// NewSchema parsea el esquema y lo ata al resolver raíz.
func NewSchema(r *Resolver) (*gql.Schema, error) {
	return gql.ParseSchema(schemaSDL, r)
}
