package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/log"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/pkg/validator"
)

// EventRecorder validates a product event and appends it to the event store.
type EventRecorder interface {
	Record(ctx context.Context, ev model.ProductEvent) error
}

var _ EventRecorder = (*Recorder)(nil)

type Recorder struct {
	logger    *slog.Logger
	validator validator.Validator
	repo      repository.ProductEventRepository
	now       func() time.Time
}

type RecorderOption func(*Recorder)

// WithClock sets the clock used to stamp event records.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		r.now = now
	}
}

func NewRecorder(
	logger *slog.Logger,
	repo repository.ProductEventRepository,
	opts ...RecorderOption,
) (*Recorder, error) {
	v, err := validator.NewDefaultValidator()
	if err != nil {
		return nil, err
	}

	r := &Recorder{
		logger:    logger,
		validator: v,
		repo:      repo,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Record returns InvalidProductEventErr for an event without a known type or a product id, and
// StorageFailure when the append fails.
func (r *Recorder) Record(ctx context.Context, ev model.ProductEvent) error {
	if err := r.validator.Validate(ev); err != nil {
		return apperr.InvalidProductEventErr.WithMsg(validator.FormatErrors(err)).WrapParent(err)
	}

	ctx = log.WithProductEvent(ctx, ev.ProductID, ev.EventType)
	record := model.NewEventRecord(ev, r.now())
	if err := r.repo.AppendEvent(ctx, record); err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "product event recorded",
		slog.String("pk", record.PartitionKey()),
		slog.String("sk", record.SortKey()),
	)

	return nil
}
