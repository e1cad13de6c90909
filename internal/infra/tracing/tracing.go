// Package tracing provides OpenTelemetry tracing setup and span helpers.
package tracing

import (
	"context"
	"log/slog"
	"time"

	"eventradar/config"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

// TracerName is the instrumentation name for spans started by this service.
const TracerName = "eventradar"

// Provider manages the OpenTelemetry tracer provider.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// ProviderParams holds dependencies for Provider, injected by Fx.
type ProviderParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewProvider configures the global tracer provider. When tracing is disabled
// the global no-op provider stays in place and spans cost nothing.
func NewProvider(params ProviderParams) (*Provider, error) {
	cfg := params.Config.Tracing
	if cfg == nil || !cfg.Enabled {
		params.Logger.Info("Tracing disabled")

		return &Provider{}, nil
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(params.Config.Env.ServiceName),
			attribute.String("environment", params.Config.Env.Env),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create resource")
	}

	opts := []otlptracehttp.Option{}
	if cfg.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exportCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exporter, err := otlptracehttp.New(exportCtx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplingRate))),
		sdktrace.WithBatcher(exporter),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	params.Logger.Info("Tracing initialized",
		slog.String("endpoint", cfg.Endpoint),
		slog.Float64("sampling_rate", cfg.SamplingRate),
	)

	provider := &Provider{tp: tp}
	params.Lc.Append(fx.Hook{
		OnStop: provider.Shutdown,
	})

	return provider, nil
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tp == nil {
		return nil
	}

	return errors.Wrap(p.tp.Shutdown(ctx), "failed to shutdown tracer provider")
}

// StartSpan creates a span for an operation and returns a function ending it.
//
//	ctx, endSpan := tracing.StartSpan(ctx, "feed.fetch_events")
//	defer func() { endSpan(err) }()
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := otel.Tracer(TracerName).Start(ctx, name, trace.WithAttributes(attrs...))

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
