// Package telemetry provides OpenTelemetry integration for distributed tracing and metrics.
// It enables observability for graph and node updates with support for:
//   - Distributed tracing with trace IDs and span context propagation
//   - Prometheus metrics for graph and node update statistics
//   - An observer.Observer adapter that bridges graph update events to spans and counters
package telemetry
