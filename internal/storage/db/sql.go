package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
)

// NewMySQL opens a MySQL connection pool.
//
// ClientFoundRows is enabled so that an UPDATE reports matched rows instead of changed rows;
// the product repository relies on it to tell a missing row from an unchanged one.
func NewMySQL(ctx context.Context, cfg config.MySQL) (*sql.DB, error) {
	myConf := mysql.NewConfig()
	myConf.User = cfg.User
	myConf.Passwd = cfg.Password
	myConf.Net = "tcp"
	myConf.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	myConf.DBName = cfg.DB
	myConf.ParseTime = true
	myConf.ClientFoundRows = true

	connector, err := mysql.NewConnector(myConf)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}

	sqlDB := sql.OpenDB(connector)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := ping(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return sqlDB, nil
}

// NewSQLite opens the embedded SQLite database at cfg.Path, creating it when missing.
func NewSQLite(ctx context.Context, cfg config.SQLite) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", sqliteDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := ping(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return sqlDB, nil
}

func sqliteDSN(cfg config.SQLite) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeout.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	return "file:" + cfg.Path + "?" + q.Encode()
}

func ping(ctx context.Context, sqlDB *sql.DB) error {
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}
