package config

import "time"

type SQLite struct {
	Path        string        `env:"SQLITE_PATH" envDefault:"catalog.db"`
	BusyTimeout time.Duration `env:"SQLITE_BUSY_TIMEOUT" envDefault:"5s"`
}
