package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/fixed-capacity-library-go/library"
)

// AttrOutcome carries a business outcome that is neither ok nor an error, e.g. a rejected borrow.
const AttrOutcome = "library.outcome"

// TracingCollector creates one OpenTelemetry span per library operation.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates a TracingCollector; the tracer should come from your TracerProvider.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan starts a span with the attributes and returns the context carrying it.
func (t *TracingCollector) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, library.SpanContext) {
	spanCtx, span := t.tracer.Start(ctx, name, trace.WithAttributes(toAttributes(attrs)...))

	return spanCtx, &OTelSpanContext{span: span}
}

// FinishSpan adds the attributes, sets the status and ends the span.
// Span contexts not created by this collector are ignored.
func (t *TracingCollector) FinishSpan(spanCtx library.SpanContext, status string, attrs map[string]string) {
	otelSpanCtx, ok := spanCtx.(*OTelSpanContext)
	if !ok {
		return
	}

	otelSpanCtx.span.SetAttributes(toAttributes(attrs)...)
	otelSpanCtx.SetStatus(status)
	otelSpanCtx.span.End()
}

var _ library.TracingCollector = (*TracingCollector)(nil)

// OTelSpanContext wraps an OpenTelemetry span as a library.SpanContext.
type OTelSpanContext struct {
	span trace.Span
}

// SetStatus maps library statuses to span status codes.
// Successful and idempotent operations are Ok. Business rejections (rejected, invalid_id,
// capacity_exceeded, no_match) keep the span status unset and are recorded as AttrOutcome.
func (s *OTelSpanContext) SetStatus(status string) {
	switch status {
	case "success", "idempotent":
		s.span.SetStatus(codes.Ok, "")
	case "error", "canceled", "cancelled":
		s.span.SetStatus(codes.Error, status)
	default:
		s.span.SetAttributes(attribute.String(AttrOutcome, status))
	}
}

func (s *OTelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

var _ library.SpanContext = (*OTelSpanContext)(nil)
