// Package observe provides the telemetry primitives consumed by the
// cacher and its host broker: structured logging scoped by component
// name, metrics and tracing over OpenTelemetry, and an observability
// middleware for action handler execution.
//
// It is a pure instrumentation library: no execution, no transport, no
// I/O beyond exporter setup.
package observe
