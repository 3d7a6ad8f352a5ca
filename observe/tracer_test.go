package observe

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// TestActionMeta_SpanName verifies deterministic span names with and without
// a namespace.
func TestActionMeta_SpanName(t *testing.T) {
	tests := []struct {
		name     string
		meta     ActionMeta
		expected string
	}{
		{
			name:     "with namespace",
			meta:     ActionMeta{Namespace: "prod", Name: "users.get"},
			expected: "action.call.prod.users.get",
		},
		{
			name:     "without namespace",
			meta:     ActionMeta{Name: "users.get"},
			expected: "action.call.users.get",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.meta.SpanName(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

// TestActionMeta_FullName verifies namespace qualification.
func TestActionMeta_FullName(t *testing.T) {
	tests := []struct {
		name     string
		meta     ActionMeta
		expected string
	}{
		{
			name:     "with namespace",
			meta:     ActionMeta{Namespace: "prod", Name: "users.get"},
			expected: "prod.users.get",
		},
		{
			name:     "without namespace",
			meta:     ActionMeta{Name: "users.get"},
			expected: "users.get",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.meta.FullName(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

// TestActionMeta_Validate verifies the name requirement.
func TestActionMeta_Validate(t *testing.T) {
	if err := (ActionMeta{Name: "users.get"}).Validate(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if err := (ActionMeta{Namespace: "prod"}).Validate(); !errors.Is(err, ErrMissingActionName) {
		t.Errorf("expected ErrMissingActionName, got %v", err)
	}
}

// TestTracer_SpanAttributes verifies action attributes are present on the span.
func TestTracer_SpanAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tr := NewTracer(tp.Tracer("test"))

	meta := ActionMeta{Namespace: "prod", Name: "users.get", Version: "1.0.0"}

	_, span := tr.StartSpan(context.Background(), meta)
	tr.EndSpan(span, nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	recorded := spans[0]
	if recorded.Name() != "action.call.prod.users.get" {
		t.Errorf("expected span name 'action.call.prod.users.get', got %q", recorded.Name())
	}

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range recorded.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs["action.name"].AsString() != "users.get" {
		t.Errorf("expected action.name='users.get', got %v", attrs["action.name"])
	}
	if attrs["action.namespace"].AsString() != "prod" {
		t.Errorf("expected action.namespace='prod', got %v", attrs["action.namespace"])
	}
	if attrs["action.version"].AsString() != "1.0.0" {
		t.Errorf("expected action.version='1.0.0', got %v", attrs["action.version"])
	}
	if recorded.Status().Code != codes.Ok {
		t.Errorf("expected Ok status, got %v", recorded.Status().Code)
	}
}

// TestTracer_EndSpanRecordsError verifies error status and attribute flip.
func TestTracer_EndSpanRecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tr := NewTracer(tp.Tracer("test"))

	_, span := tr.StartSpan(context.Background(), ActionMeta{Name: "users.get"})
	wantErr := errors.New("backend down")
	tr.EndSpan(span, wantErr)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	recorded := spans[0]
	if recorded.Status().Code != codes.Error {
		t.Errorf("expected Error status, got %v", recorded.Status().Code)
	}
	if recorded.Status().Description != "backend down" {
		t.Errorf("expected status description 'backend down', got %q", recorded.Status().Description)
	}

	var errorFlag bool
	for _, kv := range recorded.Attributes() {
		if kv.Key == "action.error" {
			errorFlag = kv.Value.AsBool()
		}
	}
	if !errorFlag {
		t.Error("expected action.error=true on failed span")
	}

	if len(recorded.Events()) == 0 {
		t.Error("expected a recorded error event")
	}
}

// TestNopTracer verifies the nop tracer produces usable spans.
func TestNopTracer(t *testing.T) {
	tr := NewNopTracer()
	ctx, span := tr.StartSpan(context.Background(), ActionMeta{Name: "noop"})
	if ctx == nil || span == nil {
		t.Fatal("expected non-nil context and span")
	}
	tr.EndSpan(span, errors.New("ignored"))
}
