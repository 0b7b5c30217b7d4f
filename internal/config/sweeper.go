package config

import "time"

type Sweeper struct {
	BatchSize uint32        `env:"SWEEPER_BATCH_SIZE" envDefault:"500"`
	Interval  time.Duration `env:"SWEEPER_INTERVAL" envDefault:"30s"`
}
