// Package sweeper deletes expired product events from stores without native expiry.
package sweeper

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
)

const (
	defaultBatchSize = 500
	defaultInterval  = 30 * time.Second
)

type Service struct {
	cfg    config.Sweeper
	logger *slog.Logger
	purger repository.ExpiredEventPurger
	now    func() time.Time

	stopChan chan struct{}
}

func NewService(
	cfg config.Sweeper,
	logger *slog.Logger,
	purger repository.ExpiredEventPurger,
) *Service {
	// The batch size is a postgres LIMIT and must stay a positive int32.
	if cfg.BatchSize == 0 || cfg.BatchSize > math.MaxInt32 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}

	return &Service{
		cfg:      cfg,
		logger:   logger.With(slog.String("service", "sweeper")),
		purger:   purger,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)

	stoppedChan := make(chan struct{})
	go func() {
		defer close(stoppedChan)
		s.run(ctx)
	}()

	return func() {
		defer cancel()

		close(s.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(5 * time.Second):
			cancel()
			<-stoppedChan
		}
	}
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep purges batches until a batch comes back short, so a backlog drains in one tick.
func (s *Service) sweep(ctx context.Context) {
	//nolint:gosec
	limit := int32(s.cfg.BatchSize)
	before := s.now()

	var total int64
	for {
		select {
		case <-s.stopChan:
			return
		default:
		}

		purged, err := s.purger.PurgeExpiredEvents(ctx, before, limit)
		if err != nil {
			s.logger.ErrorContext(ctx, "error purging expired events", slog.Any("error", err))
			return
		}

		total += purged
		if purged < int64(limit) {
			break
		}
	}

	if total > 0 {
		s.logger.InfoContext(ctx, "purged expired events", slog.Int64("count", total))
	}
}
