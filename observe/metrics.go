package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records action call metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic and must return quickly.
type Metrics interface {
	// RecordCall records one action call with duration and error status.
	RecordCall(ctx context.Context, meta ActionMeta, duration time.Duration, err error)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates a Metrics instance over the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		"action.call.total",
		metric.WithDescription("Total number of action calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"action.call.errors",
		metric.WithDescription("Total number of failed action calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"action.call.duration_ms",
		metric.WithDescription("Action call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
	}, nil
}

// RecordCall records metrics for one action call.
func (m *metricsImpl) RecordCall(ctx context.Context, meta ActionMeta, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("action.name", meta.Name),
	}
	if meta.Namespace != "" {
		attrs = append(attrs, attribute.String("action.namespace", meta.Namespace))
	}

	opt := metric.WithAttributes(attrs...)

	m.totalCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// nopMetrics is a metrics implementation that does nothing.
type nopMetrics struct{}

// NopMetrics returns a Metrics that drops everything.
func NopMetrics() Metrics {
	return nopMetrics{}
}

func (nopMetrics) RecordCall(context.Context, ActionMeta, time.Duration, error) {}
