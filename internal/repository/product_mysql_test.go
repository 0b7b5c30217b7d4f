package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

func TestMySQLProductRepository(t *testing.T) {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN is not set")
	}

	runProductRepositorySuite(t, func(t *testing.T) ProductRepository {
		ctx := context.Background()

		myConf, err := mysql.ParseDSN(dsn)
		require.NoError(t, err)
		myConf.ClientFoundRows = true

		connector, err := mysql.NewConnector(myConf)
		require.NoError(t, err)

		sqlDB := sql.OpenDB(connector)
		t.Cleanup(func() { sqlDB.Close() })

		require.NoError(t, db.MigrateMySQL(ctx, sqlDB))

		_, err = sqlDB.ExecContext(ctx, "TRUNCATE TABLE `products`")
		require.NoError(t, err)

		return NewMySQLProductRepository(sqlDB, "products")
	})
}
