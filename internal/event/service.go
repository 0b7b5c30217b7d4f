package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/mq"
)

// Service records the product events consumed from a Kafka topic.
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
	recorder   EventRecorder
	topic      string
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
	recorder EventRecorder,
	topic string,
) *Service {
	return &Service{
		logger:     logger,
		mqConsumer: mqConsumer,
		recorder:   recorder,
		topic:      topic,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if err := s.mqConsumer.RegisterHandler(s.topic, s.handleProductEvent); err != nil {
		return nil, fmt.Errorf("register product event handler: %w", err)
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	cleanup := func() {
		mqCleanup()
	}

	return cleanup, nil
}

func (s *Service) handleProductEvent(ctx context.Context, topic string, payload []byte) error {
	var ev model.ProductEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("unmarshal product event: %w", err)
	}

	if err := s.recorder.Record(ctx, ev); err != nil {
		return fmt.Errorf("record product event: %w", err)
	}

	return nil
}
