package cache

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	metricsOnce    sync.Once
	storeOps       metric.Int64Counter
	storeDurations metric.Float64Histogram
)

func initMetrics() {
	metricsOnce.Do(func() {
		meter := otel.Meter("github.com/jonwraymond/actioncache/cache")

		var err error
		storeOps, err = meter.Int64Counter(
			"cache.operations",
			metric.WithDescription("Total cache store operations"),
			metric.WithUnit("{operation}"),
		)
		if err != nil {
			otel.Handle(err)
		}

		storeDurations, err = meter.Float64Histogram(
			"cache.operation.duration_ms",
			metric.WithDescription("Cache store operation duration in milliseconds"),
			metric.WithUnit("ms"),
		)
		if err != nil {
			otel.Handle(err)
		}
	})
}

// InstrumentedStore wraps a Store with OpenTelemetry metrics and span
// attributes. The wrapped store's behavior, including its error policy,
// passes through unchanged.
type InstrumentedStore struct {
	wrapped   Store
	storeType string
}

// NewInstrumentedStore wraps store. storeType labels the backend in the
// emitted metrics (for example "memory" or "redis").
func NewInstrumentedStore(store Store, storeType string) *InstrumentedStore {
	initMetrics()
	return &InstrumentedStore{
		wrapped:   store,
		storeType: storeType,
	}
}

// Get retrieves content from the wrapped store, recording hit/miss/error
// status.
func (s *InstrumentedStore) Get(ctx context.Context, key string) (any, error) {
	start := time.Now()
	value, err := s.wrapped.Get(ctx, key)
	duration := time.Since(start)

	status := "miss"
	if err != nil {
		status = "error"
	} else if value != nil {
		status = "hit"
	}
	s.record(ctx, "get", status, duration)

	return value, err
}

// Set stores content in the wrapped store.
func (s *InstrumentedStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	start := time.Now()
	err := s.wrapped.Set(ctx, key, value, ttl)
	s.record(ctx, "set", successOrError(err), time.Since(start))
	return err
}

// Del removes content from the wrapped store.
func (s *InstrumentedStore) Del(ctx context.Context, key string) error {
	start := time.Now()
	err := s.wrapped.Del(ctx, key)
	s.record(ctx, "del", successOrError(err), time.Since(start))
	return err
}

// Clean removes matching content from the wrapped store.
func (s *InstrumentedStore) Clean(ctx context.Context, pattern string) error {
	start := time.Now()
	err := s.wrapped.Clean(ctx, pattern)
	s.record(ctx, "clean", successOrError(err), time.Since(start))
	return err
}

func successOrError(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (s *InstrumentedStore) record(ctx context.Context, operation, status string, duration time.Duration) {
	durationMs := float64(duration.Milliseconds())

	if storeOps != nil {
		storeOps.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("cache.store", s.storeType),
				attribute.String("cache.operation", operation),
				attribute.String("cache.status", status),
			),
		)
	}
	if storeDurations != nil {
		storeDurations.Record(ctx, durationMs,
			metric.WithAttributes(
				attribute.String("cache.store", s.storeType),
				attribute.String("cache.operation", operation),
			),
		)
	}

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("cache.store", s.storeType),
		attribute.String("cache."+operation+".status", status),
		attribute.Float64("cache."+operation+".duration_ms", durationMs),
	)
}

// Ensure InstrumentedStore implements Store
var _ Store = (*InstrumentedStore)(nil)
