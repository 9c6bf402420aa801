package inference

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("bayes.inference")
	meter  = otel.Meter("bayes.inference")
)

var (
	propagateLatency metric.Float64Histogram
	propagateTotal   metric.Int64Counter
	compileLatency   metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments once.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		propagateLatency, err = meter.Float64Histogram(
			"bayes_propagate_duration_seconds",
			metric.WithDescription("Duration of belief propagation runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		propagateTotal, err = meter.Int64Counter(
			"bayes_propagate_total",
			metric.WithDescription("Total number of belief propagation runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		compileLatency, err = meter.Float64Histogram(
			"bayes_compile_duration_seconds",
			metric.WithDescription("Duration of network compilation"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// StartSpan opens a span named op for the given engine.
func StartSpan(ctx context.Context, engine, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("bayes.engine", engine))
	return tracer.Start(ctx, engine+"."+op, trace.WithAttributes(attrs...))
}

// EndSpan records err on span (if any) and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// RecordPropagation records one propagation run of engine.
func RecordPropagation(ctx context.Context, engine string, d time.Duration, err error) {
	if initMetrics() != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("engine", engine),
		attribute.Bool("success", err == nil),
	)
	propagateLatency.Record(ctx, d.Seconds(), attrs)
	propagateTotal.Add(ctx, 1, attrs)
}

// RecordCompile records one compilation of engine.
func RecordCompile(ctx context.Context, engine string, d time.Duration, err error) {
	if initMetrics() != nil {
		return
	}
	compileLatency.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("engine", engine),
		attribute.Bool("success", err == nil),
	))
}
