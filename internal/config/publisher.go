package config

import (
	"fmt"
	"strings"
	"time"
)

type Publisher struct {
	Mode PublisherMode `env:"PUBLISHER_MODE" envDefault:"DIRECT"`
	// Destination is the Kafka topic in KAFKA mode and the events receiver URL in HTTP mode.
	Destination string `env:"PRODUCT_EVENTS_DESTINATION"`
	// Actor is recorded as the event email until caller identity is available.
	Actor   string        `env:"PRODUCT_EVENTS_ACTOR" envDefault:"usuario@email.com"`
	Timeout time.Duration `env:"PUBLISHER_TIMEOUT" envDefault:"5s"`
}

// PublisherMode selects how product events cross to the event store.
type PublisherMode uint8

const (
	PublisherModeDirect PublisherMode = iota
	PublisherModeKafka
	PublisherModeHTTP
)

// String returns the string representation of the publisher mode.
func (m PublisherMode) String() string {
	return enumName([]string{"DIRECT", "KAFKA", "HTTP"}, uint8(m))
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *PublisherMode) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "DIRECT":
		*m = PublisherModeDirect
	case "KAFKA":
		*m = PublisherModeKafka
	case "HTTP":
		*m = PublisherModeHTTP
	default:
		return fmt.Errorf("unknown publisher mode: %s", text)
	}
	return nil
}

func (m PublisherMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
