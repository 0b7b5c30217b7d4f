package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRecord(t *testing.T) {
	product := Product{ID: "p-1", Code: "SM-S921B", Price: 899.99}
	ev := NewProductEvent(product, EventTypeUpdated, "usuario@email.com", "req-1")

	t.Run("Should derive the keys from code, type and creation time", func(t *testing.T) {
		record := NewEventRecord(ev, time.UnixMilli(1700000000123))

		assert.Equal(t, "#product_SM-S921B", record.PartitionKey())
		assert.Equal(t, "UPDATED#1700000000123", record.SortKey())
		assert.Equal(t, int64(1700000000123), record.CreatedAt)
		assert.Equal(t, EventInfo{ProductID: "p-1", Price: 899.99}, record.Info())
	})

	t.Run("Should expire five minutes after the creation second", func(t *testing.T) {
		record := NewEventRecord(ev, time.UnixMilli(1700000000999))
		assert.Equal(t, int64(1700000300), record.TTL())

		record = NewEventRecord(ev, time.UnixMilli(1700000001000))
		assert.Equal(t, int64(1700000301), record.TTL())
	})

	t.Run("Should collide for the same type in the same millisecond", func(t *testing.T) {
		at := time.UnixMilli(1700000000123)
		other := NewProductEvent(Product{ID: "p-1", Code: "SM-S921B", Price: 1}, EventTypeUpdated, "", "req-2")

		assert.Equal(t, NewEventRecord(ev, at).SortKey(), NewEventRecord(other, at).SortKey())
	})
}

func TestNewProductEvent(t *testing.T) {
	product := Product{ID: "p-1", ProductName: "Galaxy", Code: "SM-S921B", Price: 10.5, Model: "S24", ProductURL: "u"}

	ev := NewProductEvent(product, EventTypeDeleted, "usuario@email.com", "req-1")

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"eventType": "DELETED",
		"productId": "p-1",
		"productCode": "SM-S921B",
		"productPrice": 10.5,
		"email": "usuario@email.com",
		"requestId": "req-1"
	}`, string(b))
}

func TestEventType_Validate(t *testing.T) {
	for _, et := range []EventType{EventTypeCreated, EventTypeUpdated, EventTypeDeleted} {
		assert.NoError(t, et.Validate())
	}

	assert.ErrorIs(t, EventType("created").Validate(), ErrInvalidEventType)
	assert.ErrorIs(t, EventType("").Validate(), ErrInvalidEventType)
}
