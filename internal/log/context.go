package log

import (
	"context"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

type productEventKey struct{}

type productEvent struct {
	productID string
	eventType model.EventType
}

// WithProductEvent returns a copy of ctx whose log records carry product_id and event_type.
func WithProductEvent(ctx context.Context, productID string, eventType model.EventType) context.Context {
	return context.WithValue(ctx, productEventKey{}, productEvent{productID: productID, eventType: eventType})
}

func productEventFromContext(ctx context.Context) (productEvent, bool) {
	pe, ok := ctx.Value(productEventKey{}).(productEvent)
	return pe, ok
}
