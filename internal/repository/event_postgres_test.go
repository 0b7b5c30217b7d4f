package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

func TestPostgresEventRepository(t *testing.T) {
	ctx := context.Background()

	newRepo := func(t *testing.T) (*PostgresEventRepository, db.DB) {
		pool := newTestPool(t)

		_, err := pool.Exec(ctx, `TRUNCATE product_events`)
		require.NoError(t, err)

		client := db.NewClient(pool)
		return NewPostgresEventRepository(client, "product_events"), client
	}

	t.Run("Should store the record with derived keys", func(t *testing.T) {
		repo, client := newRepo(t)

		record := sampleRecord(time.Now())
		require.NoError(t, repo.AppendEvent(ctx, record))

		var (
			eventType, email, requestID string
			createdAt, ttl              int64
			info                        model.EventInfo
		)
		err := client.QueryRow(ctx, `
			SELECT event_type, email, request_id, created_at, ttl, info
			FROM product_events WHERE pk = $1 AND sk = $2
		`, record.PartitionKey(), record.SortKey()).Scan(&eventType, &email, &requestID, &createdAt, &ttl, &info)
		require.NoError(t, err)

		assert.Equal(t, "CREATED", eventType)
		assert.Equal(t, "usuario@email.com", email)
		assert.Equal(t, "req-1", requestID)
		assert.Equal(t, record.CreatedAt, createdAt)
		assert.Equal(t, record.CreatedAt/1000+300, ttl)
		assert.Equal(t, record.Info(), info)
	})

	t.Run("Should keep the last write for the same keys", func(t *testing.T) {
		repo, client := newRepo(t)

		first := sampleRecord(time.Now())
		second := first
		second.Event.RequestID = "req-2"

		require.NoError(t, repo.AppendEvent(ctx, first))
		require.NoError(t, repo.AppendEvent(ctx, second))

		var count int
		var requestID string
		require.NoError(t, client.QueryRow(ctx, `SELECT count(*), max(request_id) FROM product_events`).Scan(&count, &requestID))
		assert.Equal(t, 1, count)
		assert.Equal(t, "req-2", requestID)
	})

	t.Run("Should purge only expired records", func(t *testing.T) {
		repo, _ := newRepo(t)

		now := time.Now()
		expired := sampleRecord(now.Add(-10 * time.Minute))
		live := sampleRecord(now)
		live.Event.EventType = model.EventTypeUpdated

		require.NoError(t, repo.AppendEvent(ctx, expired))
		require.NoError(t, repo.AppendEvent(ctx, live))

		purged, err := repo.PurgeExpiredEvents(ctx, now, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(1), purged)

		purged, err = repo.PurgeExpiredEvents(ctx, now, 100)
		require.NoError(t, err)
		assert.Zero(t, purged)
	})
}
