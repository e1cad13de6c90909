// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"eventradar/config"
	"eventradar/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	RecommendationHandler *handler.RecommendationHandler
	Config                *config.Config
	Registry              *prometheus.Registry `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	recommendationHandler *handler.RecommendationHandler
	config                *config.Config
	registry              *prometheus.Registry
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		recommendationHandler: params.RecommendationHandler,
		config:                params.Config,
		registry:              params.Registry,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	apiGroup := e.Group("/api")
	{
		apiGroup.GET("/health", handler.HealthCheck)
		apiGroup.POST("/recommendations", r.recommendationHandler.FindRecommendations)
	}
}

// RegisterMetricsRoute exposes the Prometheus registry when metrics are enabled.
func (r *router) RegisterMetricsRoute(e *echo.Echo) {
	if r.registry == nil || r.config.Metrics == nil || !r.config.Metrics.Enabled {
		return
	}

	e.GET(r.config.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		Registry:          r.registry,
		EnableOpenMetrics: true,
	})))
}

// QuietPaths lists the paths probes and scrapers hit on a schedule.
func (r *router) QuietPaths() []string {
	paths := []string{"/health", "/api/health"}
	if r.config.Metrics != nil && r.config.Metrics.Enabled {
		paths = append(paths, r.config.Metrics.Path)
	}

	return paths
}
