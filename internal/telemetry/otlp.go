// Package telemetry wires OpenTelemetry tracing for backend calls.
package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InstrumentationName names the tracer used by the console.
const InstrumentationName = "lambdagw"

// Provider hands out tracers and flushes spans on shutdown.
// A Provider built without an endpoint is a no-op.
type Provider struct {
	sdk  *sdktrace.TracerProvider
	noop oteltrace.TracerProvider
}

// Setup creates an OTLP/HTTP exporting provider when endpoint is set.
// endpoint may be host:port (plain HTTP) or a full http(s) URL.
func Setup(ctx context.Context, endpoint, serviceName string) (*Provider, error) {
	if endpoint == "" {
		return &Provider{noop: noop.NewTracerProvider()}, nil
	}

	var opt otlptracehttp.Option
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		opt = otlptracehttp.WithEndpointURL(endpoint)
	} else {
		opt = otlptracehttp.WithEndpoint(endpoint)
	}
	opts := []otlptracehttp.Option{opt}
	if !strings.HasPrefix(endpoint, "https://") {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)
	return newSDKProvider(sdktrace.WithBatcher(exporter), sdktrace.WithResource(res)), nil
}

func newSDKProvider(opts ...sdktrace.TracerProviderOption) *Provider {
	return &Provider{sdk: sdktrace.NewTracerProvider(opts...)}
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p != nil && p.sdk != nil
}

// Tracer returns the console's tracer.
func (p *Provider) Tracer() oteltrace.Tracer {
	if p.Enabled() {
		return p.sdk.Tracer(InstrumentationName)
	}
	if p != nil && p.noop != nil {
		return p.noop.Tracer(InstrumentationName)
	}
	return noop.NewTracerProvider().Tracer(InstrumentationName)
}

// Shutdown flushes pending spans and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}
