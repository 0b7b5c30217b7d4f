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
	"github.com/tuanvumaihuynh/product-catalog/internal/publisher"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
	"github.com/tuanvumaihuynh/product-catalog/internal/sweeper"
	"github.com/tuanvumaihuynh/product-catalog/internal/telemetry"
	"github.com/tuanvumaihuynh/product-catalog/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running standalone application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log       config.Log
		HTTP      config.HTTP
		Otel      config.Otel
		Stores    app.StoreConfig
		Publisher config.Publisher
		Sweeper   config.Sweeper
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

	stores, err := app.OpenStores(ctx, cfg.Stores, app.ProductStore|app.EventStore, logger)
	if err != nil {
		return fmt.Errorf("error opening stores: %w", err)
	}
	defer stores.Close()

	recorder, err := event.NewRecorder(logger, stores.Events)
	if err != nil {
		return fmt.Errorf("error creating event recorder: %w", err)
	}

	productService := service.NewProductService(
		logger,
		stores.Products,
		publisher.NewDirectPublisher(recorder, cfg.Publisher.Timeout),
	)

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		svc := http.New(cfg.HTTP, logger,
			http.WithProducts(productService, http.StaticActor(cfg.Publisher.Actor)),
		)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

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
