// Package graphql exposes the user and auth usecases as a GraphQL API.
package graphql

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/pkg/errors"
)

//go:embed schema.graphqls
var schemaSDL string

// NewSchema parses the SDL and binds it to the resolver.
func NewSchema(cfg *config.Config, resolver *Resolver, logger *slog.Logger) (*graphqlgo.Schema, error) {
	opts := []graphqlgo.SchemaOpt{
		graphqlgo.Logger(&panicLogger{logger: logger}),
	}
	if cfg.GraphQL.MaxDepth > 0 {
		opts = append(opts, graphqlgo.MaxDepth(cfg.GraphQL.MaxDepth))
	}

	schema, err := graphqlgo.ParseSchema(schemaSDL, resolver, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse graphql schema")
	}

	return schema, nil
}

// NewHandler serves POSTed GraphQL requests against the schema.
func NewHandler(schema *graphqlgo.Schema) http.Handler {
	return &relay.Handler{Schema: schema}
}

// panicLogger reports resolver panics through slog.
type panicLogger struct {
	logger *slog.Logger
}

func (l *panicLogger) LogPanic(ctx context.Context, value any) {
	deliverycontext.GetLoggerOrDefault(ctx, l.logger).Error("GraphQL resolver panicked",
		slog.String("panic", fmt.Sprint(value)),
	)
}
