package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/mq"
	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
	"github.com/tuanvumaihuynh/product-catalog/pkg/msgheader"
)

var _ Publisher = (*KafkaPublisher)(nil)

// KafkaPublisher produces events to a topic keyed by product code, so events of one product
// stay ordered within a partition.
type KafkaPublisher struct {
	producer mq.Producer
	topic    string
	timeout  time.Duration
}

func NewKafkaPublisher(producer mq.Producer, topic string, timeout time.Duration) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		timeout:  timeout,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, product model.Product, eventType model.EventType, actor, correlationID string) error {
	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	ev := model.NewProductEvent(product, eventType, actor, correlationID)
	payload, err := json.Marshal(ev)
	if err != nil {
		return publishFailure(fmt.Errorf("marshal product event: %w", err))
	}

	ctx = correlationid.NewContext(ctx, correlationID)
	key := product.Code

	if err := p.producer.Produce(ctx, mq.ProduceMsg{
		Topic:        p.topic,
		Headers:      msgheader.BuildHeaders(ctx),
		Payload:      payload,
		PartitionKey: &key,
	}); err != nil {
		return publishFailure(fmt.Errorf("produce product event: %w", err))
	}

	return nil
}
