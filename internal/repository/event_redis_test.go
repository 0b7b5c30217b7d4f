package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func sampleRecord(createdAt time.Time) model.EventRecord {
	return model.NewEventRecord(model.ProductEvent{
		EventType:    model.EventTypeCreated,
		ProductID:    "0192f5a4-7c1e-7d30-8f43-5b6c7d8e9f00",
		ProductCode:  "SM-S921B",
		ProductPrice: 899.99,
		Email:        "usuario@email.com",
		RequestID:    "req-1",
	}, createdAt)
}

func TestRedisEventRepository_AppendEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("Should store the record as a hash with derived keys", func(t *testing.T) {
		mr, client := newTestRedis(t)
		repo := NewRedisEventRepository(client)

		record := sampleRecord(time.Now())
		require.NoError(t, repo.AppendEvent(ctx, record))

		key := "#product_SM-S921B:CREATED#" + strconv.FormatInt(record.CreatedAt, 10)
		assert.Equal(t, key, RecordKey(record))
		assert.True(t, mr.Exists(key))

		assert.Equal(t, "#product_SM-S921B", mr.HGet(key, "pk"))
		assert.Equal(t, "CREATED#"+strconv.FormatInt(record.CreatedAt, 10), mr.HGet(key, "sk"))
		assert.Equal(t, "usuario@email.com", mr.HGet(key, "email"))
		assert.Equal(t, "req-1", mr.HGet(key, "requestId"))
		assert.Equal(t, "CREATED", mr.HGet(key, "eventType"))
		assert.Equal(t, strconv.FormatInt(record.CreatedAt, 10), mr.HGet(key, "createdAt"))
		assert.Equal(t, strconv.FormatInt(record.CreatedAt/1000+300, 10), mr.HGet(key, "ttl"))

		var info model.EventInfo
		require.NoError(t, json.Unmarshal([]byte(mr.HGet(key, "info")), &info))
		assert.Equal(t, model.EventInfo{ProductID: "0192f5a4-7c1e-7d30-8f43-5b6c7d8e9f00", Price: 899.99}, info)
	})

	t.Run("Should expire the record at its ttl", func(t *testing.T) {
		mr, client := newTestRedis(t)
		repo := NewRedisEventRepository(client)

		record := sampleRecord(time.Now())
		require.NoError(t, repo.AppendEvent(ctx, record))

		ttl := mr.TTL(RecordKey(record))
		assert.InDelta(t, (5 * time.Minute).Seconds(), ttl.Seconds(), 2)

		mr.FastForward(5*time.Minute + 2*time.Second)
		assert.False(t, mr.Exists(RecordKey(record)))
	})

	t.Run("Should index records of a product in creation order", func(t *testing.T) {
		mr, client := newTestRedis(t)
		repo := NewRedisEventRepository(client)

		now := time.Now()
		created := sampleRecord(now)
		updated := sampleRecord(now.Add(time.Second))
		updated.Event.EventType = model.EventTypeUpdated

		require.NoError(t, repo.AppendEvent(ctx, created))
		require.NoError(t, repo.AppendEvent(ctx, updated))

		members, err := mr.ZMembers("#product_SM-S921B")
		require.NoError(t, err)
		assert.Equal(t, []string{created.SortKey(), updated.SortKey()}, members)
		assert.Greater(t, mr.TTL("#product_SM-S921B"), time.Duration(0))
	})

	t.Run("Should keep the index alive while its newest record lives", func(t *testing.T) {
		mr, client := newTestRedis(t)
		repo := NewRedisEventRepository(client)

		now := time.Now()
		newer := sampleRecord(now.Add(100 * time.Second))
		newer.Event.EventType = model.EventTypeUpdated
		older := sampleRecord(now)

		require.NoError(t, repo.AppendEvent(ctx, newer))
		require.NoError(t, repo.AppendEvent(ctx, older))

		assert.InDelta(t, (6*time.Minute + 40*time.Second).Seconds(), mr.TTL(newer.PartitionKey()).Seconds(), 2)

		mr.FastForward(5*time.Minute + 2*time.Second)
		assert.False(t, mr.Exists(RecordKey(older)))
		assert.True(t, mr.Exists(RecordKey(newer)))
		assert.True(t, mr.Exists(newer.PartitionKey()))

		mr.FastForward(100 * time.Second)
		assert.False(t, mr.Exists(newer.PartitionKey()))
	})

	t.Run("Should overwrite a record with the same keys", func(t *testing.T) {
		mr, client := newTestRedis(t)
		repo := NewRedisEventRepository(client)

		first := sampleRecord(time.Now())
		second := first
		second.Event.RequestID = "req-2"

		require.NoError(t, repo.AppendEvent(ctx, first))
		require.NoError(t, repo.AppendEvent(ctx, second))

		assert.Equal(t, "req-2", mr.HGet(RecordKey(first), "requestId"))

		members, err := mr.ZMembers(first.PartitionKey())
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})

	t.Run("Should return storage failure when redis fails", func(t *testing.T) {
		mr, client := newTestRedis(t)
		repo := NewRedisEventRepository(client)

		mr.SetError("server unavailable")

		err := repo.AppendEvent(ctx, sampleRecord(time.Now()))
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.StorageFailureErr))
	})
}
