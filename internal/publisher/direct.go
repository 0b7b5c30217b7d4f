package publisher

import (
	"context"
	"time"

	"github.com/tuanvumaihuynh/product-catalog/internal/event"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

var _ Publisher = (*DirectPublisher)(nil)

// DirectPublisher records events in process.
type DirectPublisher struct {
	recorder event.EventRecorder
	timeout  time.Duration
}

func NewDirectPublisher(recorder event.EventRecorder, timeout time.Duration) *DirectPublisher {
	return &DirectPublisher{
		recorder: recorder,
		timeout:  timeout,
	}
}

func (p *DirectPublisher) Publish(ctx context.Context, product model.Product, eventType model.EventType, actor, correlationID string) error {
	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	ev := model.NewProductEvent(product, eventType, actor, correlationID)
	if err := p.recorder.Record(ctx, ev); err != nil {
		return publishFailure(err)
	}
	return nil
}
