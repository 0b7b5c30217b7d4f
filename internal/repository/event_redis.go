package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

var _ ProductEventRepository = (*RedisEventRepository)(nil)

// appendEventScript writes the record hash and indexes it. The index expires with the newest
// record it holds, whatever order the records arrive in.
var appendEventScript = redis.NewScript(`
local recordKey = KEYS[1]
local indexKey = KEYS[2]
local ttl = ARGV[1]
local createdAt = ARGV[2]
local sortKey = ARGV[3]
local eventTTL = tonumber(ARGV[4])

redis.call('HSET', recordKey, unpack(ARGV, 5))
redis.call('EXPIREAT', recordKey, ttl)
redis.call('ZADD', indexKey, createdAt, sortKey)

local newest = redis.call('ZRANGE', indexKey, -1, -1, 'WITHSCORES')
local indexTTL = math.floor(tonumber(newest[2]) / 1000) + eventTTL
redis.call('EXPIREAT', indexKey, indexTTL)

return 1
`)

// RedisEventRepository stores every record as a hash at "<pk>:<sk>" expiring at the record ttl,
// and indexes the sort keys of a partition in a sorted set at "<pk>" scored by createdAt.
type RedisEventRepository struct {
	client redis.UniversalClient
}

func NewRedisEventRepository(client redis.UniversalClient) *RedisEventRepository {
	return &RedisEventRepository{client: client}
}

// RecordKey returns the hash key of a record.
func RecordKey(record model.EventRecord) string {
	return record.PartitionKey() + ":" + record.SortKey()
}

func (r RedisEventRepository) AppendEvent(ctx context.Context, record model.EventRecord) error {
	info, err := json.Marshal(record.Info())
	if err != nil {
		return apperr.StorageFailure(msgAppendEventFailed, fmt.Errorf("marshal event info: %w", err))
	}

	args := []any{
		record.TTL(),
		record.CreatedAt,
		record.SortKey(),
		int64(model.EventTTL / time.Second),
		"pk", record.PartitionKey(),
		"sk", record.SortKey(),
		"email", record.Event.Email,
		"createdAt", record.CreatedAt,
		"requestId", record.Event.RequestID,
		"eventType", string(record.Event.EventType),
		"info", string(info),
		"ttl", record.TTL(),
	}

	err = appendEventScript.Run(ctx, r.client, []string{RecordKey(record), record.PartitionKey()}, args...).Err()
	if err != nil {
		return apperr.StorageFailure(msgAppendEventFailed, fmt.Errorf("write event: %w", err))
	}

	return nil
}
