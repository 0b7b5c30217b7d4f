package model

import (
	"errors"
	"fmt"
	"time"
)

// EventTTL is how long a recorded product event is kept before it expires.
const EventTTL = 5 * time.Minute

// PartitionKeyPrefix prefixes the product code in an event record partition key.
const PartitionKeyPrefix = "#product_"

// EventType is the lifecycle transition a ProductEvent describes.
type EventType string

const (
	EventTypeCreated EventType = "CREATED"
	EventTypeUpdated EventType = "UPDATED"
	EventTypeDeleted EventType = "DELETED"
)

var ErrInvalidEventType = errors.New("invalid event type")

// Validate reports whether t is one of the known event types.
func (t EventType) Validate() error {
	switch t {
	case EventTypeCreated, EventTypeUpdated, EventTypeDeleted:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEventType, string(t))
	}
}

// ProductEvent describes one lifecycle transition of a product.
type ProductEvent struct {
	EventType    EventType `json:"eventType" validate:"required,enum"`
	ProductID    string    `json:"productId" validate:"required"`
	ProductCode  string    `json:"productCode"`
	ProductPrice float64   `json:"productPrice"`
	Email        string    `json:"email"`
	RequestID    string    `json:"requestId"`
}

// NewProductEvent builds the event for a product snapshot.
func NewProductEvent(product Product, eventType EventType, actor, correlationID string) ProductEvent {
	return ProductEvent{
		EventType:    eventType,
		ProductID:    product.ID,
		ProductCode:  product.Code,
		ProductPrice: product.Price,
		Email:        actor,
		RequestID:    correlationID,
	}
}

// EventInfo is the nested payload stored with every event record.
type EventInfo struct {
	ProductID string  `json:"productId"`
	Price     float64 `json:"price"`
}

// EventRecord is the persisted form of a ProductEvent.
type EventRecord struct {
	Event ProductEvent
	// CreatedAt is the creation time in milliseconds since the Unix epoch.
	CreatedAt int64
}

// NewEventRecord stamps ev with its creation time.
func NewEventRecord(ev ProductEvent, createdAt time.Time) EventRecord {
	return EventRecord{
		Event:     ev,
		CreatedAt: createdAt.UnixMilli(),
	}
}

// PartitionKey groups all events of one product code.
func (r EventRecord) PartitionKey() string {
	return PartitionKeyPrefix + r.Event.ProductCode
}

// SortKey orders events of a product chronologically within an event type.
// Two events of the same type created in the same millisecond share a sort key.
func (r EventRecord) SortKey() string {
	return fmt.Sprintf("%s#%d", r.Event.EventType, r.CreatedAt)
}

// TTL is the absolute expiry of the record in seconds since the Unix epoch.
func (r EventRecord) TTL() int64 {
	return r.CreatedAt/1000 + int64(EventTTL/time.Second)
}

// Info returns the nested payload of the record.
func (r EventRecord) Info() EventInfo {
	return EventInfo{
		ProductID: r.Event.ProductID,
		Price:     r.Event.ProductPrice,
	}
}
