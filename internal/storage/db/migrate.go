package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Table names in the migrations are substituted from PRODUCTS_TABLE and EVENTS_TABLE.
//
//go:embed migrations
var migrations embed.FS

// MigratePostgres applies the postgres migrations (products and product events).
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	return migrate(ctx, stdlib.OpenDBFromPool(pool), goose.DialectPostgres, "migrations/postgres")
}

// MigrateMySQL applies the mysql migrations (products).
func MigrateMySQL(ctx context.Context, sqlDB *sql.DB) error {
	return migrate(ctx, sqlDB, goose.DialectMySQL, "migrations/mysql")
}

// MigrateSQLite applies the sqlite migrations (products).
func MigrateSQLite(ctx context.Context, sqlDB *sql.DB) error {
	return migrate(ctx, sqlDB, goose.DialectSQLite3, "migrations/sqlite")
}

func migrate(ctx context.Context, sqlDB *sql.DB, dialect goose.Dialect, dir string) error {
	fsys, err := fs.Sub(migrations, dir)
	if err != nil {
		return fmt.Errorf("sub migrations fs: %w", err)
	}

	provider, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}

	return nil
}
