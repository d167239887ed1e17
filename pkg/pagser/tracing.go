package pagser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/sllt/pagser/pkg/pagser/config"
	"github.com/sllt/pagser/pkg/pagser/infra"
)

var errUnsupportedExporter = errors.New("unsupported trace exporter")

// initTracer installs the global propagator and, when TRACE_EXPORTER names one, a batching
// tracer provider. The returned function flushes and stops it.
func initTracer(ctx context.Context, c *infra.Container, cfg config.Config) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	exporter, err := newSpanExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if exporter == nil {
		return func(context.Context) error { return nil }, nil
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", c.GetAppName()),
			attribute.String("service.version", c.GetAppVersion()),
		)),
	)

	otel.SetTracerProvider(tp)

	c.Logf("Exporting traces to %s", cfg.GetOrDefault("TRACER_URL", "default endpoint"))

	return tp.Shutdown, nil
}

// newSpanExporter returns nil when tracing is off. TRACER_URL is host:port for otlp and the full
// collector URL for zipkin.
func newSpanExporter(ctx context.Context, cfg config.Config) (sdktrace.SpanExporter, error) {
	url := cfg.Get("TRACER_URL")

	switch name := strings.ToLower(cfg.Get("TRACE_EXPORTER")); name {
	case "", "none":
		return nil, nil
	case "otlp":
		opts := []otlptracegrpc.Option{otlptracegrpc.WithInsecure()}
		if url != "" {
			opts = append(opts, otlptracegrpc.WithEndpoint(url))
		}

		return otlptracegrpc.New(ctx, opts...)
	case "zipkin":
		return zipkin.New(url)
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedExporter, name)
	}
}
