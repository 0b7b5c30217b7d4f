// Package publisher forwards product lifecycle events to the event store boundary.
//
// Every implementation blocks until the boundary acknowledges the event or fails, and reports
// failures as apperr.PublishFailureErr.
package publisher

import (
	"context"
	"time"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

type Publisher interface {
	Publish(ctx context.Context, product model.Product, eventType model.EventType, actor, correlationID string) error
}

func publishFailure(err error) error {
	return apperr.PublishFailureErr.WrapParent(err)
}

// withTimeout bounds the call to the boundary when timeout is positive.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
