package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/product-catalog/internal/app"
	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/event"
	"github.com/tuanvumaihuynh/product-catalog/internal/http"
	"github.com/tuanvumaihuynh/product-catalog/internal/log"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/mq"
	"github.com/tuanvumaihuynh/product-catalog/internal/sweeper"
	"github.com/tuanvumaihuynh/product-catalog/internal/telemetry"
	"github.com/tuanvumaihuynh/product-catalog/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running events application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Otel     config.Otel
		Kafka    config.Kafka
		Stores   app.StoreConfig
		Receiver config.Receiver
		Sweeper  config.Sweeper
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	stores, err := app.OpenStores(ctx, cfg.Stores, app.EventStore, logger)
	if err != nil {
		return fmt.Errorf("error opening stores: %w", err)
	}
	defer stores.Close()

	recorder, err := event.NewRecorder(logger, stores.Events)
	if err != nil {
		return fmt.Errorf("error creating event recorder: %w", err)
	}

	var kafkaConsumer *mq.KafkaConsumer
	if cfg.Receiver.KafkaTopic != "" {
		kafkaConsumer, err = mq.NewKafkaConsumer(ctx, cfg.Kafka, logger)
		if err != nil {
			return fmt.Errorf("error creating kafka consumer: %w", err)
		}
		defer kafkaConsumer.Close()
	}

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		httpCfg := config.HTTP{Port: cfg.Receiver.Port}
		svc := http.New(httpCfg, logger,
			http.WithEventReceiver(event.NewReceiver(logger, recorder)),
		)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running events receiver: %w", err))
		}

		logger.InfoContext(ctx, "events receiver started",
			slog.String("address", fmt.Sprintf(":%d", cfg.Receiver.Port)),
			slog.String("path", http.EventsPath),
		)

		<-interruptChan

		logger.InfoContext(ctx, "events receiver is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down events receiver", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "events receiver is stopped")
	})

	if kafkaConsumer != nil {
		wg.Go(func() {
			svc := event.New(logger, kafkaConsumer, recorder, cfg.Receiver.KafkaTopic)
			cleanup, err := svc.Run(ctx)
			if err != nil {
				panic(fmt.Errorf("error running event service: %w", err))
			}
			logger.InfoContext(ctx, "event service started", slog.String("topic", cfg.Receiver.KafkaTopic))

			<-interruptChan

			logger.InfoContext(ctx, "event service is shutting down")
			cleanup()

			logger.InfoContext(ctx, "event service is stopped")
		})
	}

	if stores.Purger != nil {
		wg.Go(func() {
			svc := sweeper.NewService(cfg.Sweeper, logger, stores.Purger)
			cleanup := svc.Run(ctx)
			logger.InfoContext(ctx, "sweeper service started")

			<-interruptChan

			logger.InfoContext(ctx, "sweeper service is shutting down")
			cleanup()

			logger.InfoContext(ctx, "sweeper service is stopped")
		})
	}

	wg.Wait()

	return nil
}
