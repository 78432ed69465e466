package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/sasspipe/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge is a span processor that reports span lifecycles to a Renderer.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a Bridge reporting to renderer. A nil renderer disables reporting.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// NewProvider creates a tracer provider whose spans are reported to renderer.
func NewProvider(renderer ports.Renderer) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewBridge(renderer)))
}

// OnStart reports a started span.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil || !s.SpanContext().IsValid() {
		return
	}

	var parentID string
	if p := trace.SpanContextFromContext(parent); p.IsValid() {
		parentID = p.SpanID().String()
	}
	b.renderer.OnTaskStart(s.SpanContext().SpanID().String(), parentID, s.Name(), s.StartTime())
}

// OnEnd reports a finished span, turning an error status back into an error.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil || !s.SpanContext().IsValid() {
		return
	}

	var err error
	if status := s.Status(); status.Code == codes.Error {
		msg := status.Description
		if msg == "" {
			msg = "bundle failed"
		}
		err = errors.New(msg)
	}
	b.renderer.OnTaskComplete(s.SpanContext().SpanID().String(), s.EndTime(), err)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(context.Context) error { return nil }

// Shutdown does nothing.
func (b *Bridge) Shutdown(context.Context) error { return nil }
