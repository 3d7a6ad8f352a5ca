package observe

import (
	"context"
	"time"
)

// ExecuteFunc is the signature for action call execution. This is the
// function shape Middleware wraps in a broker pipeline.
type ExecuteFunc func(ctx context.Context, action ActionMeta, req any) (any, error)

// Middleware wraps action execution with observability (tracing,
// metrics, logging).
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe ExecuteFunc.
//   - Context: propagates context through tracing spans.
//   - Errors: errors from the wrapped function are recorded and
//     propagated unchanged.
//   - Ownership: request/result values pass through without modification.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware with the given observability
// components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps an ExecuteFunc with tracing, metrics, and logging.
func (m *Middleware) Wrap(fn ExecuteFunc) ExecuteFunc {
	return func(ctx context.Context, action ActionMeta, req any) (any, error) {
		ctx, span := m.tracer.StartSpan(ctx, action)

		start := time.Now()
		result, err := fn(ctx, action, req)
		duration := time.Since(start)

		m.tracer.EndSpan(span, err)
		m.metrics.RecordCall(ctx, action, duration, err)

		fields := []Field{
			{Key: "action", Value: action.FullName()},
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			m.logger.Error(ctx, "action call failed", fields...)
		} else {
			m.logger.Info(ctx, "action call completed", fields...)
		}

		return result, err
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer. This is
// a convenience function for common wiring.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Loggers()("broker")), nil
}
