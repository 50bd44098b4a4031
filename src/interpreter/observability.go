package interpreter

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/seuros/gopher-tape/src/ast"
	"github.com/seuros/gopher-tape/src/internal/buildinfo"
)

// Instrumentation library name
const instrumentationName = "github.com/seuros/gopher-tape/src/interpreter"

// ObservabilityConfig controls telemetry collection
type ObservabilityConfig struct {
	// EnableTracing enables OpenTelemetry distributed tracing
	EnableTracing bool

	// EnableMetrics enables OpenTelemetry metrics collection
	EnableMetrics bool

	// TracingAttributes are additional attributes to add to all spans
	TracingAttributes []attribute.KeyValue

	// MetricAttributes are additional attributes to add to all metrics
	MetricAttributes []attribute.KeyValue

	// TracerProvider overrides the global provider when set
	TracerProvider trace.TracerProvider

	// MeterProvider overrides the global provider when set
	MeterProvider metric.MeterProvider
}

// DefaultObservabilityConfig returns default observability configuration
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		EnableTracing: true,
		EnableMetrics: true,
		TracingAttributes: []attribute.KeyValue{
			attribute.String("interpreter.name", "gopher-tape"),
			attribute.String("interpreter.version", buildinfo.LibraryVersion),
		},
		MetricAttributes: []attribute.KeyValue{
			attribute.String("interpreter.name", "gopher-tape"),
		},
	}
}

// observabilityInstruments holds OpenTelemetry instruments
type observabilityInstruments struct {
	tracer trace.Tracer
	meter  metric.Meter

	runDuration    metric.Float64Histogram
	runCount       metric.Int64Counter
	runErrors      metric.Int64Counter
	instructions   metric.Int64Counter
	loopIterations metric.Int64Counter
	ioBytes        metric.Int64Counter
}

// initObservability initializes OpenTelemetry instruments
func initObservability(config *ObservabilityConfig) *observabilityInstruments {
	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	mp := config.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	tracer := tp.Tracer(instrumentationName, trace.WithInstrumentationVersion(buildinfo.LibraryVersion))
	meter := mp.Meter(instrumentationName, metric.WithInstrumentationVersion(buildinfo.LibraryVersion))

	instruments := &observabilityInstruments{
		tracer: tracer,
		meter:  meter,
	}

	var err error

	instruments.runDuration, err = meter.Float64Histogram(
		"tape.run.duration",
		metric.WithDescription("Duration of program runs"),
		metric.WithUnit("s"),
	)
	if err != nil {
		otel.Handle(err)
	}

	instruments.runCount, err = meter.Int64Counter(
		"tape.run.count",
		metric.WithDescription("Number of program runs completed"),
	)
	if err != nil {
		otel.Handle(err)
	}

	instruments.runErrors, err = meter.Int64Counter(
		"tape.run.errors",
		metric.WithDescription("Number of program runs that failed"),
	)
	if err != nil {
		otel.Handle(err)
	}

	instruments.instructions, err = meter.Int64Counter(
		"tape.instructions",
		metric.WithDescription("Number of instructions executed"),
	)
	if err != nil {
		otel.Handle(err)
	}

	instruments.loopIterations, err = meter.Int64Counter(
		"tape.loop.iterations",
		metric.WithDescription("Number of loop body passes"),
	)
	if err != nil {
		otel.Handle(err)
	}

	instruments.ioBytes, err = meter.Int64Counter(
		"tape.io.bytes",
		metric.WithDescription("Bytes read by input and written by output instructions"),
		metric.WithUnit("By"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return instruments
}

// spanContext holds span-specific context information
type spanContext struct {
	span      trace.Span
	startTime time.Time
}

// startRunSpan creates a new tracing span for a program run
func (oi *observabilityInstruments) startRunSpan(ctx context.Context, prog *ast.Program, tapeSize int, config *ObservabilityConfig) (context.Context, *spanContext) {
	if !config.EnableTracing {
		return ctx, &spanContext{startTime: time.Now()}
	}

	attrs := make([]attribute.KeyValue, 0, len(config.TracingAttributes)+4)
	attrs = append(attrs, config.TracingAttributes...)
	attrs = append(attrs,
		attribute.Int("tape.size", tapeSize),
		attribute.Int("program.instructions", prog.Len()),
		attribute.Int("program.depth", prog.Depth()),
	)
	if prog.Name != "" {
		attrs = append(attrs, attribute.String("program.name", prog.Name))
	}

	ctx, span := oi.tracer.Start(ctx, "tape.run",
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)

	return ctx, &spanContext{
		span:      span,
		startTime: time.Now(),
	}
}

// finishRunSpan completes a run span and records run metrics
func (oi *observabilityInstruments) finishRunSpan(spanCtx *spanContext, summary *Summary, err error, config *ObservabilityConfig) {
	duration := time.Since(spanCtx.startTime)

	if config.EnableMetrics {
		ctx := context.Background()
		attrs := metric.WithAttributes(config.MetricAttributes...)

		oi.runDuration.Record(ctx, duration.Seconds(), attrs)
		oi.instructions.Add(ctx, summary.Instructions, attrs)
		oi.loopIterations.Add(ctx, summary.LoopIterations, attrs)
		oi.ioBytes.Add(ctx, summary.BytesRead, withExtra(config.MetricAttributes, attribute.String("io.direction", "read")))
		oi.ioBytes.Add(ctx, summary.BytesWritten, withExtra(config.MetricAttributes, attribute.String("io.direction", "write")))

		if err != nil {
			oi.runErrors.Add(ctx, 1, withExtra(config.MetricAttributes, attribute.String("error.kind", errorKind(err))))
		} else {
			oi.runCount.Add(ctx, 1, attrs)
		}
	}

	if config.EnableTracing && spanCtx.span != nil {
		spanCtx.span.SetAttributes(
			attribute.Int64("run.instructions", summary.Instructions),
			attribute.Int64("run.loop_iterations", summary.LoopIterations),
			attribute.Int64("run.bytes_read", summary.BytesRead),
			attribute.Int64("run.bytes_written", summary.BytesWritten),
			attribute.Int("run.max_pointer", summary.MaxPointer),
			attribute.Float64("run.duration_ms", float64(duration.Nanoseconds())/1e6),
		)

		if err != nil {
			spanCtx.span.RecordError(err)
			spanCtx.span.SetStatus(codes.Error, err.Error())
		} else {
			spanCtx.span.SetStatus(codes.Ok, "")
		}

		spanCtx.span.End()
	}
}

// withExtra returns base plus extra without touching base's backing array.
func withExtra(base []attribute.KeyValue, extra ...attribute.KeyValue) metric.MeasurementOption {
	attrs := make([]attribute.KeyValue, 0, len(base)+len(extra))
	attrs = append(attrs, base...)
	attrs = append(attrs, extra...)
	return metric.WithAttributes(attrs...)
}

// errorKind classifies a run failure for metric attributes
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrPointerOutOfBounds):
		return "pointer_out_of_bounds"
	case errors.Is(err, ErrInputExhausted):
		return "input_exhausted"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "io"
	}
}
