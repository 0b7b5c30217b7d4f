package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/event"
	"github.com/tuanvumaihuynh/product-catalog/internal/publisher"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/mq"
)

var (
	ErrNoEventsDestination = errors.New("PRODUCT_EVENTS_DESTINATION is required for the KAFKA and HTTP publisher modes")
	ErrNoRecorder          = errors.New("the DIRECT publisher mode needs an event recorder")
)

// OpenPublisher builds the publisher selected by cfg.Mode. The DIRECT mode records through
// recorder in process. The returned func releases the publisher's clients.
func OpenPublisher(
	ctx context.Context,
	cfg config.Publisher,
	kafkaCfg config.Kafka,
	recorder event.EventRecorder,
) (publisher.Publisher, func(), error) {
	switch cfg.Mode {
	case config.PublisherModeDirect:
		if recorder == nil {
			return nil, nil, ErrNoRecorder
		}
		return publisher.NewDirectPublisher(recorder, cfg.Timeout), func() {}, nil

	case config.PublisherModeKafka:
		if cfg.Destination == "" {
			return nil, nil, ErrNoEventsDestination
		}
		producer, err := mq.NewKafkaProducer(ctx, kafkaCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("create kafka producer: %w", err)
		}
		return publisher.NewKafkaPublisher(producer, cfg.Destination, cfg.Timeout), producer.Close, nil

	case config.PublisherModeHTTP:
		if cfg.Destination == "" {
			return nil, nil, ErrNoEventsDestination
		}
		client := &http.Client{Timeout: cfg.Timeout}
		return publisher.NewCloudEventsPublisher(client, cfg.Destination, cfg.Timeout), client.CloseIdleConnections, nil

	default:
		return nil, nil, fmt.Errorf("unsupported publisher mode: %s", cfg.Mode)
	}
}
