// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"accounts/config"
	"accounts/internal/delivery/graphql"
	"accounts/internal/delivery/http/middleware"
	"accounts/internal/delivery/http/router/handler"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config         *config.Config
	Schema         *graphqlgo.Schema
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds everything that needs to be registered.
type router struct {
	config         *config.Config
	schema         *graphqlgo.Schema
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required dependencies here.
func NewRouter(params RouterParams) *router {
	return &router{
		config:         params.Config,
		schema:         params.Schema,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// The token is optional here; guarded resolvers reject anonymous callers.
	e.POST(r.config.GraphQL.Path, echo.WrapHandler(graphql.NewHandler(r.schema)), r.authMiddleware.Authenticate)
}
