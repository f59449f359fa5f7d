package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// Service name for telemetry
	serviceName = "flowgraph"

	// Metric names
	metricGraphUpdates  = "graph.updates.total"
	metricGraphDuration = "graph.update.duration"
	metricGraphSuccess  = "graph.updates.success.total"
	metricGraphFailure  = "graph.updates.failure.total"
	metricNodeUpdates   = "node.updates.total"
	metricNodeDuration  = "node.update.duration"
	metricNodeSuccess   = "node.updates.success.total"
	metricNodeFailure   = "node.updates.failure.total"
)

// Provider manages OpenTelemetry setup and provides access to tracers and meters.
type Provider struct {
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider trace.TracerProvider
	meter          metric.Meter
	tracer         trace.Tracer

	// Metrics instruments
	graphUpdates   metric.Int64Counter
	graphDuration  metric.Float64Histogram
	graphSuccess   metric.Int64Counter
	graphFailure   metric.Int64Counter
	nodeUpdates    metric.Int64Counter
	nodeDuration   metric.Float64Histogram
	nodeSuccess    metric.Int64Counter
	nodeFailure    metric.Int64Counter

	mu sync.RWMutex
}

// Config holds telemetry configuration
type Config struct {
	// ServiceName is the name of the embedding service for telemetry
	ServiceName string

	// ServiceVersion is the version of the embedding service
	ServiceVersion string

	// Environment (e.g., "production", "staging", "development")
	Environment string

	// EnableTracing enables distributed tracing
	EnableTracing bool

	// EnableMetrics enables metrics collection
	EnableMetrics bool
}

// DefaultConfig returns default telemetry configuration
func DefaultConfig() Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    "development",
		EnableTracing:  true,
		EnableMetrics:  true,
	}
}

// NewProvider creates a new telemetry provider with Prometheus metrics exporter.
// It initializes OpenTelemetry with the given configuration and returns a provider
// that can be used to create tracers and record metrics.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	provider := &Provider{}

	// Create resource with service information
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			attribute.String("environment", config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	// Initialize metrics if enabled
	if config.EnableMetrics {
		if err := provider.initMetrics(res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	// Initialize tracing if enabled
	if config.EnableTracing {
		provider.initTracing()
	}

	return provider, nil
}

// initMetrics initializes the metrics provider with Prometheus exporter
func (p *Provider) initMetrics(res *resource.Resource) error {
	// Create Prometheus exporter
	exporter, err := prometheus.New()
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	// Create meter provider with the exporter
	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	// Set as global meter provider
	otel.SetMeterProvider(p.meterProvider)

	// Create meter
	p.meter = p.meterProvider.Meter(serviceName)

	// Create metric instruments
	if err := p.createMetricInstruments(); err != nil {
		return fmt.Errorf("failed to create metric instruments: %w", err)
	}

	return nil
}

// initTracing initializes the tracing provider
func (p *Provider) initTracing() {
	// For now, use the global tracer provider
	// In production, this should be configured with appropriate exporters (OTLP, Jaeger, etc.)
	p.tracerProvider = otel.GetTracerProvider()
	p.tracer = p.tracerProvider.Tracer(serviceName)
}

// createMetricInstruments creates all metric instruments
func (p *Provider) createMetricInstruments() error {
	var err error

	// Graph metrics
	p.graphUpdates, err = p.meter.Int64Counter(
		metricGraphUpdates,
		metric.WithDescription("Total number of Graph.Update calls"),
	)
	if err != nil {
		return err
	}

	p.graphDuration, err = p.meter.Float64Histogram(
		metricGraphDuration,
		metric.WithDescription("Graph update duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.graphSuccess, err = p.meter.Int64Counter(
		metricGraphSuccess,
		metric.WithDescription("Total number of successful graph updates"),
	)
	if err != nil {
		return err
	}

	p.graphFailure, err = p.meter.Int64Counter(
		metricGraphFailure,
		metric.WithDescription("Total number of failed graph updates"),
	)
	if err != nil {
		return err
	}

	// Node metrics
	p.nodeUpdates, err = p.meter.Int64Counter(
		metricNodeUpdates,
		metric.WithDescription("Total number of node updates"),
	)
	if err != nil {
		return err
	}

	p.nodeDuration, err = p.meter.Float64Histogram(
		metricNodeDuration,
		metric.WithDescription("Node update duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.nodeSuccess, err = p.meter.Int64Counter(
		metricNodeSuccess,
		metric.WithDescription("Total number of successful node updates"),
	)
	if err != nil {
		return err
	}

	p.nodeFailure, err = p.meter.Int64Counter(
		metricNodeFailure,
		metric.WithDescription("Total number of failed node updates"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Tracer returns the tracer for creating spans
func (p *Provider) Tracer() trace.Tracer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tracer
}

// Meter returns the meter for recording metrics
func (p *Provider) Meter() metric.Meter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.meter
}

// RecordGraphUpdate records metrics for one Graph.Update call.
func (p *Provider) RecordGraphUpdate(ctx context.Context, graphID string, duration time.Duration, success bool, nodesUpdated int) {
	if p.meter == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("graph.id", graphID),
		attribute.Int("nodes.updated", nodesUpdated),
	}

	p.graphUpdates.Add(ctx, 1, metric.WithAttributes(attrs...))
	p.graphDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if success {
		p.graphSuccess.Add(ctx, 1, metric.WithAttributes(attrs...))
	} else {
		p.graphFailure.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordNodeUpdate records metrics for a single node's Update call.
func (p *Provider) RecordNodeUpdate(ctx context.Context, nodeID string, nodeTag string, duration time.Duration, success bool) {
	if p.meter == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("node.id", nodeID),
		attribute.String("node.tag", nodeTag),
	}

	p.nodeUpdates.Add(ctx, 1, metric.WithAttributes(attrs...))
	p.nodeDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if success {
		p.nodeSuccess.Add(ctx, 1, metric.WithAttributes(attrs...))
	} else {
		p.nodeFailure.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// Shutdown gracefully shuts down the telemetry provider
func (p *Provider) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown meter provider: %w", err)
		}
	}

	return nil
}
