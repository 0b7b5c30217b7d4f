package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

var (
	_ ProductEventRepository = (*PostgresEventRepository)(nil)
	_ ExpiredEventPurger     = (*PostgresEventRepository)(nil)
)

type PostgresEventRepository struct {
	db    db.DB
	table string
}

// NewPostgresEventRepository creates an event repository on the given postgres table.
func NewPostgresEventRepository(db db.DB, table string) *PostgresEventRepository {
	return &PostgresEventRepository{
		db:    db,
		table: pgx.Identifier{table}.Sanitize(),
	}
}

func (r PostgresEventRepository) AppendEvent(ctx context.Context, record model.EventRecord) error {
	info, err := json.Marshal(record.Info())
	if err != nil {
		return apperr.StorageFailure(msgAppendEventFailed, fmt.Errorf("marshal event info: %w", err))
	}

	if _, err := r.db.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (pk, sk, event_type, email, request_id, created_at, info, ttl)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (pk, sk) DO UPDATE SET
			event_type = EXCLUDED.event_type,
			email      = EXCLUDED.email,
			request_id = EXCLUDED.request_id,
			created_at = EXCLUDED.created_at,
			info       = EXCLUDED.info,
			ttl        = EXCLUDED.ttl
	`, r.table),
		record.PartitionKey(),
		record.SortKey(),
		string(record.Event.EventType),
		record.Event.Email,
		record.Event.RequestID,
		record.CreatedAt,
		info,
		record.TTL(),
	); err != nil {
		return apperr.StorageFailure(msgAppendEventFailed, fmt.Errorf("insert event: %w", err))
	}

	return nil
}

func (r PostgresEventRepository) PurgeExpiredEvents(ctx context.Context, before time.Time, limit int32) (int64, error) {
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`
		DELETE FROM %[1]s
		WHERE (pk, sk) IN (
			SELECT pk, sk FROM %[1]s
			WHERE ttl <= $1
			LIMIT $2
		)
	`, r.table), before.Unix(), limit)
	if err != nil {
		return 0, fmt.Errorf("delete expired events: %w", err)
	}

	return tag.RowsAffected(), nil
}
