package main

import (
	"context"
	"errors"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/seuros/gopher-tape/src/interpreter"
)

// setupTelemetry points the interpreter at stdout exporters writing to w.
// The returned shutdown flushes both pipelines.
func setupTelemetry(w io.Writer, cfg *interpreter.ObservabilityConfig) (func(context.Context) error, error) {
	res := resource.NewSchemaless(
		attribute.String("service.name", "gotape"),
		attribute.String("service.version", interpreter.Version()),
	)

	traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w), stdoutmetric.WithPrettyPrint())
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(traceExporter),
		sdktrace.WithResource(res),
	)
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	cfg.EnableTracing = true
	cfg.EnableMetrics = true
	cfg.TracerProvider = tp
	cfg.MeterProvider = mp

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
