// Package telemetry wires OpenTelemetry tracing for the wavepick CLI.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// DefaultServiceName is the service name recorded on every span's resource
// when ServiceName isn't set.
const DefaultServiceName = "wavepick"

// Config holds the telemetry configuration. There is no Endpoint field:
// this CLI has no network I/O, so the only exporter it ever wires is a
// stdout one, never OTLP.
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
}

// Init wires a real sdktrace.TracerProvider with a stdout exporter and
// registers it as the global provider, so every otel.Tracer(...) call made
// anywhere in the process (internal/waveopt's dinkelbach.go included)
// starts recording real spans instead of the default no-op ones. Spans are
// written to stderr, not stdout, so they never interleave with a solve
// command's solution output.
//
// If cfg.Enabled is false, it installs the no-op TracerProvider explicitly
// (the same one otel defaults to, made explicit here to mirror the enabled
// path) and returns a no-op cleanup.
func Init(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if !cfg.Enabled {
		otel.SetTracerProvider(tracenoop.NewTracerProvider())
		return func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "dev"
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			attribute.String("service.type", "cli"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry resource: %w", err)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(os.Stderr),
		stdouttrace.WithoutTimestamps(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stdout span exporter: %w", err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func(ctx context.Context) error {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutting down tracer provider: %w", err)
		}
		return nil
	}, nil
}
