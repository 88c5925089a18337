package orion

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/fyrsmithlabs/orion-go/pkg/orion"

// Metrics records client-side call metrics on the global meter
// provider. All methods are safe on instruments that failed to build;
// recording simply skips them.
type Metrics struct {
	invocations    metric.Int64Counter
	duration       metric.Float64Histogram
	errors         metric.Int64Counter
	activeRequests metric.Int64UpDownCounter
}

// NewMetrics builds the instrument set on the global meter provider.
// A failed instrument is logged and left nil rather than failing
// client construction.
func NewMetrics(logger *zap.Logger) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return newMetrics(otel.Meter(instrumentationName), logger)
}

func newMetrics(meter metric.Meter, logger *zap.Logger) *Metrics {
	m := &Metrics{}
	invocations, err := meter.Int64Counter(
		"orion.client.tool.invocations_total",
		metric.WithDescription("Total number of Orion tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	m.invocations = instrument(logger, invocations, err)
	// Buckets reach 120s: report tools run changepoint detection
	// server-side and routinely take tens of seconds.
	duration, err := meter.Float64Histogram(
		"orion.client.tool.duration_seconds",
		metric.WithDescription("Duration of Orion tool invocations"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0, 120.0),
	)
	m.duration = instrument(logger, duration, err)
	errorsCounter, err := meter.Int64Counter(
		"orion.client.tool.errors_total",
		metric.WithDescription("Total number of failed Orion tool invocations"),
		metric.WithUnit("{error}"),
	)
	m.errors = instrument(logger, errorsCounter, err)
	activeRequests, err := meter.Int64UpDownCounter(
		"orion.client.tool.active_requests",
		metric.WithDescription("Number of Orion tool calls currently in flight"),
		metric.WithUnit("{request}"),
	)
	m.activeRequests = instrument(logger, activeRequests, err)
	return m
}

// instrument unwraps an instrument constructor result, trading a
// failed instrument for a logged warning and a nil.
func instrument[T any](logger *zap.Logger, inst T, err error) T {
	if err != nil {
		logger.Warn("metric instrument unavailable", zap.Error(err))
		var zero T
		return zero
	}
	return inst
}

// RecordInvocation records one completed tool call, successful or not.
func (m *Metrics) RecordInvocation(ctx context.Context, tool string, elapsed time.Duration, err error) {
	set := metric.WithAttributes(attribute.String("tool", tool))

	if m.invocations != nil {
		m.invocations.Add(ctx, 1, set)
	}
	if m.duration != nil {
		m.duration.Record(ctx, elapsed.Seconds(), set)
	}
	if err == nil || m.errors == nil {
		return
	}
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("reason", categorizeError(err)),
	))
}

// TrackActive bumps the in-flight gauge and returns the matching
// decrement for the caller to defer.
func (m *Metrics) TrackActive(ctx context.Context, tool string) func() {
	if m.activeRequests == nil {
		return func() {}
	}
	set := metric.WithAttributes(attribute.String("tool", tool))
	m.activeRequests.Add(ctx, 1, set)
	return func() { m.activeRequests.Add(ctx, -1, set) }
}

// categorizeError maps a call error to a low-cardinality reason label.
func categorizeError(err error) string {
	if err == nil {
		return ""
	}

	var toolErr *ToolError
	switch {
	case errors.As(err, &toolErr):
		return "tool_error"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "connecting to orion"),
		strings.Contains(errStr, "connection refused"),
		strings.Contains(errStr, "no such host"):
		return "connect_error"
	case strings.Contains(errStr, "unauthorized"), strings.Contains(errStr, "forbidden"):
		return "auth_error"
	case strings.Contains(errStr, "decoding"):
		return "decode_error"
	case strings.Contains(errStr, "timeout"):
		return "timeout"
	default:
		return "internal_error"
	}
}
