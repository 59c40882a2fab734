// Package telemetry wires the OpenTelemetry tracer provider used by the
// router's per-step spans.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"leoroute/internal/config"
	"leoroute/internal/logger"
)

// InitTracer installs a tracer provider for serviceName and returns its
// shutdown func. When cfg.Tracing.Enabled is false it leaves the global
// tracer provider untouched (OpenTelemetry's default no-op) and returns a
// no-op shutdown. Only the stdout exporter is
// supported: this engine has no network RPC surface to ship spans over.
func InitTracer(cfg config.TelemetryConfig, serviceName string, log logger.Logger) (func(context.Context) error, error) {
	if !cfg.Tracing.Enabled {
		log.Info("tracing disabled")
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(semconv.ServiceNameKey.String(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: build resource: %w", err)
	}

	var tp *sdktrace.TracerProvider
	switch cfg.Tracing.Exporter {
	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("telemetry: init stdout exporter: %w", err)
		}
		tp = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
		)
	default:
		return nil, fmt.Errorf("telemetry: unsupported exporter %q (only \"stdout\" is wired)", cfg.Tracing.Exporter)
	}

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	log.Info("tracing enabled", logger.F("exporter", cfg.Tracing.Exporter))
	return tp.Shutdown, nil
}

