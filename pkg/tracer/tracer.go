package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

const _serviceName = "odin"

// Start opens a span on the globally registered provider. Until Init is
// called that provider is the otel no-op one, so spans cost nothing.
func Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(_serviceName).Start(ctx, spanName, opts...)
}

// Init exports spans over OTLP/HTTP to endpoint (host:port) and registers
// the provider globally. The returned func flushes and stops the exporter.
func Init(ctx context.Context, endpoint string) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptrace.New(
		ctx,
		otlptracehttp.NewClient(
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(
			resource.NewWithAttributes(
				semconv.SchemaURL,
				semconv.ServiceNameKey.String(_serviceName),
			),
		),
	)

	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
