package log

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
)

var _ slog.Handler = (*catalogHandler)(nil)

// catalogHandler adds the request, trace and product event a record belongs to.
type catalogHandler struct {
	next slog.Handler
}

func (h catalogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h catalogHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := correlationid.FromContext(ctx); ok {
		r.AddAttrs(slog.String("correlation_id", id))
	}

	if pe, ok := productEventFromContext(ctx); ok {
		r.AddAttrs(
			slog.String("product_id", pe.productID),
			slog.String("event_type", string(pe.eventType)),
		)
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	return h.next.Handle(ctx, r)
}

func (h catalogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return catalogHandler{next: h.next.WithAttrs(attrs)}
}

func (h catalogHandler) WithGroup(name string) slog.Handler {
	return catalogHandler{next: h.next.WithGroup(name)}
}
