// Package app opens the stores selected by configuration for the cmd binaries.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/kv"
)

type StoreConfig struct {
	Storage    config.Storage
	EventStore config.EventStore
	Postgres   config.Postgres
	MySQL      config.MySQL
	SQLite     config.SQLite
	Redis      config.Redis

	// AutoMigrate applies the migrations of the opened SQL stores on startup.
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"false"`
}

type Stores struct {
	Products repository.ProductRepository
	Events   repository.ProductEventRepository
	// Purger is nil when the event store expires records natively.
	Purger repository.ExpiredEventPurger

	pgxPool *pgxpool.Pool
	closers []func()
}

type StoreSet uint8

const (
	ProductStore StoreSet = 1 << iota
	EventStore
)

// OpenStores opens the stores in set. The returned Stores must be closed.
func OpenStores(ctx context.Context, cfg StoreConfig, set StoreSet, logger *slog.Logger) (*Stores, error) {
	s := &Stores{}

	if set&ProductStore != 0 {
		if err := s.openProducts(ctx, cfg, logger); err != nil {
			s.Close()
			return nil, err
		}
	}

	if set&EventStore != 0 {
		if err := s.openEvents(ctx, cfg, logger); err != nil {
			s.Close()
			return nil, err
		}
	}

	return s, nil
}

func (s *Stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

func (s *Stores) openProducts(ctx context.Context, cfg StoreConfig, logger *slog.Logger) error {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pool, err := s.postgres(ctx, cfg, logger)
		if err != nil {
			return err
		}
		s.Products = repository.NewPostgresProductRepository(db.NewClient(pool), cfg.Storage.ProductsTable)

	case config.StorageDriverMySQL:
		sqlDB, err := db.NewMySQL(ctx, cfg.MySQL)
		if err != nil {
			return fmt.Errorf("open mysql: %w", err)
		}
		s.closers = append(s.closers, func() { sqlDB.Close() })

		if cfg.AutoMigrate {
			if err := db.MigrateMySQL(ctx, sqlDB); err != nil {
				return fmt.Errorf("migrate mysql: %w", err)
			}
		}
		s.Products = repository.NewMySQLProductRepository(sqlDB, cfg.Storage.ProductsTable)

	case config.StorageDriverSQLite:
		sqlDB, err := db.NewSQLite(ctx, cfg.SQLite)
		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}
		s.closers = append(s.closers, func() { sqlDB.Close() })

		if cfg.AutoMigrate {
			if err := db.MigrateSQLite(ctx, sqlDB); err != nil {
				return fmt.Errorf("migrate sqlite: %w", err)
			}
		}
		s.Products = repository.NewSQLiteProductRepository(sqlDB, cfg.Storage.ProductsTable)

	default:
		return fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}

	logger.InfoContext(ctx, "product store opened", slog.String("driver", cfg.Storage.Driver.String()))
	return nil
}

func (s *Stores) openEvents(ctx context.Context, cfg StoreConfig, logger *slog.Logger) error {
	switch cfg.EventStore.Driver {
	case config.EventStoreDriverPostgres:
		pool, err := s.postgres(ctx, cfg, logger)
		if err != nil {
			return err
		}
		repo := repository.NewPostgresEventRepository(db.NewClient(pool), cfg.EventStore.EventsTable)
		s.Events = repo
		s.Purger = repo

	case config.EventStoreDriverRedis:
		client, err := kv.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("open redis: %w", err)
		}
		s.closers = append(s.closers, func() { client.Close() })
		s.Events = repository.NewRedisEventRepository(client)

	default:
		return fmt.Errorf("unsupported event store driver: %s", cfg.EventStore.Driver)
	}

	logger.InfoContext(ctx, "event store opened", slog.String("driver", cfg.EventStore.Driver.String()))
	return nil
}

// postgres returns the pool shared by the postgres stores, opening it on first use.
func (s *Stores) postgres(ctx context.Context, cfg StoreConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if s.pgxPool != nil {
		return s.pgxPool, nil
	}

	pool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	s.closers = append(s.closers, pool.Close)
	s.pgxPool = pool

	if cfg.AutoMigrate {
		logger.InfoContext(ctx, "applying postgres migrations")
		if err := db.MigratePostgres(ctx, pool); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
	}

	return pool, nil
}
