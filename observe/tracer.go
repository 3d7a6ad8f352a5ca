package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// ActionMeta identifies a remote-callable action for telemetry purposes.
type ActionMeta struct {
	Name      string // Action name (required)
	Namespace string // Broker namespace (may be empty)
	Version   string // Service version (optional)
}

// SpanName returns the deterministic span name for this action.
// Format: action.call.<namespace>.<name> or action.call.<name>
func (m ActionMeta) SpanName() string {
	if m.Namespace != "" {
		return "action.call." + m.Namespace + "." + m.Name
	}
	return "action.call." + m.Name
}

// Validate checks that the metadata identifies an action.
func (m ActionMeta) Validate() error {
	if m.Name == "" {
		return ErrMissingActionName
	}
	return nil
}

// FullName returns the namespace-qualified action name.
func (m ActionMeta) FullName() string {
	if m.Namespace != "" {
		return m.Namespace + "." + m.Name
	}
	return m.Name
}

// Tracer wraps OpenTelemetry tracing with action-specific span
// management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for an action call.
	StartSpan(ctx context.Context, meta ActionMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with action metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta ActionMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("action.name", meta.Name),
		attribute.Bool("action.error", false), // Updated in EndSpan on error
	}
	if meta.Namespace != "" {
		attrs = append(attrs, attribute.String("action.namespace", meta.Namespace))
	}
	if meta.Version != "" {
		attrs = append(attrs, attribute.String("action.version", meta.Version))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("action.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// NewNopTracer creates a no-op tracer.
func NewNopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta ActionMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
