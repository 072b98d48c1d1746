package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceVersion = "1.0.0"

type ShutdownFunc func(ctx context.Context) error

// InitTracer installs a global tracer provider exporting over OTLP/HTTP. With
// no exporter endpoint configured tracing stays a no-op.
func InitTracer(ctx context.Context, cfg *config.Otel) (ShutdownFunc, error) {

	if cfg.ExporterEndpoint == "" {
		slog.Debug("Tracing disabled, no exporter endpoint configured")
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.ExporterEndpoint))
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplerRatio))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	slog.Info("📡 Tracing enabled", slog.String("endpoint", cfg.ExporterEndpoint))

	return tp.Shutdown, nil
}
