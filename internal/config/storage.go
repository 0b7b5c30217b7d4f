package config

import (
	"fmt"
	"strings"
)

type Storage struct {
	Driver        StorageDriver `env:"STORAGE_DRIVER" envDefault:"POSTGRES"`
	ProductsTable string        `env:"PRODUCTS_TABLE" envDefault:"products"`
}

type EventStore struct {
	Driver      EventStoreDriver `env:"EVENT_STORE_DRIVER" envDefault:"POSTGRES"`
	EventsTable string           `env:"EVENTS_TABLE" envDefault:"product_events"`
}

// StorageDriver selects the product store backend.
type StorageDriver uint8

const (
	StorageDriverPostgres StorageDriver = iota
	StorageDriverMySQL
	StorageDriverSQLite
)

// String returns the string representation of the storage driver.
func (d StorageDriver) String() string {
	return enumName([]string{"POSTGRES", "MYSQL", "SQLITE"}, uint8(d))
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *StorageDriver) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "POSTGRES":
		*d = StorageDriverPostgres
	case "MYSQL":
		*d = StorageDriverMySQL
	case "SQLITE":
		*d = StorageDriverSQLite
	default:
		return fmt.Errorf("unknown storage driver: %s", text)
	}
	return nil
}

func (d StorageDriver) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// EventStoreDriver selects the event store backend.
type EventStoreDriver uint8

const (
	EventStoreDriverPostgres EventStoreDriver = iota
	EventStoreDriverRedis
)

// String returns the string representation of the event store driver.
func (d EventStoreDriver) String() string {
	return enumName([]string{"POSTGRES", "REDIS"}, uint8(d))
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *EventStoreDriver) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "POSTGRES":
		*d = EventStoreDriverPostgres
	case "REDIS":
		*d = EventStoreDriverRedis
	default:
		return fmt.Errorf("unknown event store driver: %s", text)
	}
	return nil
}

func (d EventStoreDriver) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
