package repository

import (
	"context"
	"time"

	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

// ProductEventRepository records product events.
type ProductEventRepository interface {
	// AppendEvent writes the record under its partition and sort key. A record with the same
	// keys is overwritten.
	AppendEvent(ctx context.Context, record model.EventRecord) error
}

// ExpiredEventPurger removes event records whose ttl has passed, for stores without native expiry.
type ExpiredEventPurger interface {
	// PurgeExpiredEvents deletes at most limit records with ttl <= before and returns how many
	// were deleted.
	PurgeExpiredEvents(ctx context.Context, before time.Time, limit int32) (int64, error)
}

const msgAppendEventFailed = "Could not record product event"
