// Package telemetry installs the OpenTelemetry tracer provider used by chart
// assembly, chart display and menu navigation.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// DefaultServiceName is reported when no service name is configured.
const DefaultServiceName = "dashkit"

// Config selects the OTLP endpoint. An empty Endpoint disables export.
type Config struct {
	Endpoint    string
	ServiceName string
	Insecure    bool
}

// Provider owns the SDK tracer provider registered as the global provider.
type Provider struct {
	provider *sdktrace.TracerProvider
}

// New creates and installs an OTLP HTTP provider.
// Returns nil when no endpoint is configured; spans then go to the global
// no-op provider.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}
	return install(sdktrace.WithBatcher(exporter), cfg.ServiceName), nil
}

// NewWithExporter installs a provider that exports synchronously to exp.
func NewWithExporter(exp sdktrace.SpanExporter, serviceName string) *Provider {
	return install(sdktrace.WithSyncer(exp), serviceName)
}

func install(export sdktrace.TracerProviderOption, serviceName string) *Provider {
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)
	p := sdktrace.NewTracerProvider(export, sdktrace.WithResource(res))
	otel.SetTracerProvider(p)
	return &Provider{provider: p}
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) oteltrace.Tracer {
	return otel.Tracer(name)
}

// Shutdown flushes pending spans and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
