package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/arjunv/flowgraph/pkg/observer"
)

// TelemetryObserver implements observer.Observer and records telemetry data
// for graph update events.
type TelemetryObserver struct {
	provider *Provider

	// Track active spans for the graph and its nodes
	graphSpan trace.Span
	nodeSpans map[string]trace.Span

	// Track update times
	graphStartTime time.Time
	nodeStartTimes map[string]time.Time
}

// NewTelemetryObserver creates a new telemetry observer
func NewTelemetryObserver(provider *Provider) *TelemetryObserver {
	return &TelemetryObserver{
		provider:       provider,
		nodeSpans:      make(map[string]trace.Span),
		nodeStartTimes: make(map[string]time.Time),
	}
}

// OnEvent handles update events and records telemetry data
func (o *TelemetryObserver) OnEvent(ctx context.Context, event observer.Event) {
	switch event.Type {
	case observer.EventGraphStart:
		o.handleGraphStart(ctx, event)
	case observer.EventGraphEnd:
		o.handleGraphEnd(ctx, event)
	case observer.EventNodeStart:
		o.handleNodeStart(ctx, event)
	case observer.EventNodeSuccess:
		o.handleNodeSuccess(ctx, event)
	case observer.EventNodeFailure:
		o.handleNodeFailure(ctx, event)
	}
}

func (o *TelemetryObserver) handleGraphStart(ctx context.Context, event observer.Event) {
	_, span := o.provider.Tracer().Start(ctx, "graph.update",
		trace.WithAttributes(
			attribute.String("graph.id", event.GraphID),
		),
	)

	o.graphSpan = span
	o.graphStartTime = event.Timestamp
}

func (o *TelemetryObserver) handleGraphEnd(ctx context.Context, event observer.Event) {
	duration := time.Since(o.graphStartTime)

	nodesUpdated := 0
	if val, ok := event.Metadata["nodes_updated"]; ok {
		if count, ok := val.(int); ok {
			nodesUpdated = count
		}
	}

	success := event.Status == observer.StatusSuccess
	o.provider.RecordGraphUpdate(ctx, event.GraphID, duration, success, nodesUpdated)

	if o.graphSpan != nil {
		if event.Error != nil {
			o.graphSpan.RecordError(event.Error)
			o.graphSpan.SetStatus(codes.Error, event.Error.Error())
		} else {
			o.graphSpan.SetStatus(codes.Ok, "graph update completed successfully")
		}
		o.graphSpan.End()
	}
}

func (o *TelemetryObserver) handleNodeStart(ctx context.Context, event observer.Event) {
	var spanCtx context.Context
	if o.graphSpan != nil {
		spanCtx = trace.ContextWithSpan(ctx, o.graphSpan)
	} else {
		spanCtx = ctx
	}

	_, span := o.provider.Tracer().Start(spanCtx, "node.update",
		trace.WithAttributes(
			attribute.String("node.id", event.NodeID),
			attribute.String("node.tag", event.NodeTag),
			attribute.String("graph.id", event.GraphID),
		),
	)

	o.nodeSpans[event.NodeID] = span
	o.nodeStartTimes[event.NodeID] = event.Timestamp
}

func (o *TelemetryObserver) handleNodeSuccess(ctx context.Context, event observer.Event) {
	o.handleNodeEnd(ctx, event, true)
}

func (o *TelemetryObserver) handleNodeFailure(ctx context.Context, event observer.Event) {
	o.handleNodeEnd(ctx, event, false)
}

func (o *TelemetryObserver) handleNodeEnd(ctx context.Context, event observer.Event, success bool) {
	var duration time.Duration
	if startTime, ok := o.nodeStartTimes[event.NodeID]; ok {
		duration = time.Since(startTime)
		delete(o.nodeStartTimes, event.NodeID)
	}

	o.provider.RecordNodeUpdate(ctx, event.NodeID, event.NodeTag, duration, success)

	if span, ok := o.nodeSpans[event.NodeID]; ok {
		if event.Error != nil {
			span.RecordError(event.Error)
			span.SetStatus(codes.Error, event.Error.Error())
		} else {
			span.SetStatus(codes.Ok, "node update completed successfully")
		}
		span.End()
		delete(o.nodeSpans, event.NodeID)
	}
}
