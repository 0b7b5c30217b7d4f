package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tuanvumaihuynh/product-catalog/internal/app"
	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/log"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running migrate application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log    config.Log
		Stores app.StoreConfig
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	// Opening the stores with AutoMigrate applies the migrations of every configured SQL store.
	cfg.Stores.AutoMigrate = true

	logger.InfoContext(ctx, "starting database migration")

	stores, err := app.OpenStores(ctx, cfg.Stores, app.ProductStore|app.EventStore, logger)
	if err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}
	stores.Close()

	logger.InfoContext(ctx, "database migration completed successfully")

	return nil
}
