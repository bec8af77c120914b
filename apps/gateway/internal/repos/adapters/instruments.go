package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/tilsley/repoview/apps/gateway/internal/repos"
)

const instrName = "github.com/tilsley/repoview"

// Metric names emitted by every upstream adapter.
const (
	MetricUpstreamRequests = "repoview.upstream.requests"
	MetricUpstreamDuration = "repoview.upstream.duration"
)

const (
	outcomeOK          = "ok"
	outcomeNotFound    = "not_found"
	outcomeUnavailable = "unavailable"
	outcomeError       = "error"
)

// Option configures an adapter.
type Option func(*options)

type options struct {
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
}

// WithMeterProvider records adapter metrics on mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithTracerProvider records adapter spans on tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// instruments holds the spans and metrics every upstream adapter emits.
type instruments struct {
	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newInstruments(opts []Option) (instruments, error) {
	o := options{
		meterProvider:  otel.GetMeterProvider(),
		tracerProvider: otel.GetTracerProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := o.meterProvider.Meter(instrName)
	requests, err := m.Int64Counter(MetricUpstreamRequests,
		metric.WithDescription("Number of upstream requests by operation and outcome"))
	if err != nil {
		return instruments{}, fmt.Errorf("create %s counter: %w", MetricUpstreamRequests, err)
	}
	duration, err := m.Float64Histogram(MetricUpstreamDuration,
		metric.WithDescription("Upstream request duration in milliseconds"),
		metric.WithUnit("ms"))
	if err != nil {
		return instruments{}, fmt.Errorf("create %s histogram: %w", MetricUpstreamDuration, err)
	}

	return instruments{
		tracer:   o.tracerProvider.Tracer(instrName),
		requests: requests,
		duration: duration,
	}, nil
}

func (i instruments) start(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return i.tracer.Start(ctx, operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// finish ends the span and records the request counter and duration.
func (i instruments) finish(ctx context.Context, span trace.Span, operation string, started time.Time, err error) {
	outcome := classify(err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	span.SetAttributes(attribute.String("repoview.outcome", outcome))
	span.End()

	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	i.requests.Add(ctx, 1, attrs)
	i.duration.Record(ctx, float64(time.Since(started).Milliseconds()), attrs)
}

func classify(err error) string {
	var (
		repoNotFound repos.RepositoryNotFoundError
		fileNotFound repos.FileNotFoundError
		unavailable  repos.UpstreamUnavailableError
	)
	switch {
	case err == nil:
		return outcomeOK
	case errors.As(err, &repoNotFound), errors.As(err, &fileNotFound):
		return outcomeNotFound
	case errors.As(err, &unavailable):
		return outcomeUnavailable
	default:
		return outcomeError
	}
}
