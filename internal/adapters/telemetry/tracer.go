package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/sasspipe/internal/core/ports"
)

var (
	_ ports.Tracer = (*OTelTracer)(nil)
	_ ports.Span   = (*OTelSpan)(nil)
)

// OTelTracer implements ports.Tracer on an OpenTelemetry tracer provider.
// Span output is batched and streamed to the renderer when one is set.
type OTelTracer struct {
	tracer   trace.Tracer
	renderer ports.Renderer
}

// NewOTelTracer creates a tracer named name on provider.
func NewOTelTracer(provider trace.TracerProvider, name string) *OTelTracer {
	return &OTelTracer{tracer: provider.Tracer(name)}
}

// WithRenderer streams span output to renderer.
func (t *OTelTracer) WithRenderer(renderer ports.Renderer) *OTelTracer {
	t.renderer = renderer
	return t
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	ctx, span := t.tracer.Start(ctx, name)

	s := &OTelSpan{span: span}
	if t.renderer != nil {
		spanID := span.SpanContext().SpanID().String()
		renderer := t.renderer
		s.batcher = NewBatcher(0, 0, func(data []byte) {
			renderer.OnTaskLog(spanID, data)
		})
	}
	return ctx, s
}

// EmitPlan records the planned bundles on the current span and tells the renderer.
func (t *OTelTracer) EmitPlan(ctx context.Context, bundles []string) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent("plan", trace.WithAttributes(attribute.StringSlice("bundles", bundles)))
	}
	if t.renderer != nil {
		t.renderer.OnPlanEmit(bundles)
	}
}

// OTelSpan implements ports.Span.
type OTelSpan struct {
	span    trace.Span
	batcher *Batcher
}

// End flushes pending output and completes the span.
func (s *OTelSpan) End() {
	if s.batcher != nil {
		_ = s.batcher.Close()
	}
	s.span.End()
}

// RecordError records err and marks the span as failed.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprint(v)))
	}
}

// Write streams p to the renderer, or records it as a span event without one.
func (s *OTelSpan) Write(p []byte) (int, error) {
	if s.batcher != nil {
		return s.batcher.Write(p)
	}
	s.span.AddEvent("output", trace.WithAttributes(attribute.String("text", string(p))))
	return len(p), nil
}
