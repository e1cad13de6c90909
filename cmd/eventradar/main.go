package main

import (
	"context"
	"log/slog"
	"os"

	"eventradar/config"
	"eventradar/internal/delivery"
	"eventradar/internal/delivery/api"
	"eventradar/internal/delivery/api/router/handler"
	"eventradar/internal/infra/completion"
	"eventradar/internal/infra/feed"
	logs "eventradar/internal/infra/log"
	"eventradar/internal/infra/metrics"
	"eventradar/internal/infra/tracing"
	"eventradar/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		fx.WithLogger(logs.NewFxLogger),
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startTracing,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		metrics.NewRegistry,
		metrics.New,
		tracing.NewProvider,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			feed.NewMeetupFeed,
			completion.NewOpenRouterClient,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewRelevanceScorer,
			impl.NewInterestGuard,
			impl.NewRecommendationService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewRecommendationHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startTracing forces the tracer provider to be built before any delivery starts.
func startTracing(*tracing.Provider) {}

func startServer(ctx context.Context, params startServerParams) {
	for _, d := range params.Deliveries {
		go func() {
			if err := d.Serve(ctx); err != nil {
				params.Logger.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
