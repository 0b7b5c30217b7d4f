package config

import "time"

const (
	defaultHTTPReadTimeout     = 10 * time.Second
	defaultHTTPWriteTimeout    = 10 * time.Second
	defaultHTTPShutdownTimeout = 5 * time.Second
	defaultHTTPMaxBodyBytes    = 1 << 20
)

type HTTP struct {
	Port    uint32 `env:"HTTP_PORT" envDefault:"8000"`
	Swagger bool   `env:"HTTP_SWAGGER" envDefault:"true"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	// MaxBodyBytes bounds the product payload accepted by the write routes.
	MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" envDefault:"1048576"`
}

// WithDefaults returns a copy of c where every unset timeout and limit takes its default.
func (c HTTP) WithDefaults() HTTP {
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = defaultHTTPReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = defaultHTTPWriteTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultHTTPShutdownTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = defaultHTTPMaxBodyBytes
	}
	return c
}
