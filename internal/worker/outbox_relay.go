// Package worker runs the storefront's background loops.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/DanielPopoola/ficmart-storefront/internal/infrastructure/messaging"
)

// OutboxStore hands out locked batches of unprocessed messages.
type OutboxStore interface {
	ProcessBatch(ctx context.Context, limit int, handle func(ctx context.Context, msgs []domain.OutboxMessage) error) (int, error)
}

type RelayMetrics interface {
	OutboxRelayed(n int)
}

// OutboxRelay publishes committed order events. A message is stamped
// processed only after the publisher accepted it, so delivery is
// at-least-once.
type OutboxRelay struct {
	store     OutboxStore
	publisher messaging.Publisher
	metrics   RelayMetrics
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

func NewOutboxRelay(
	store OutboxStore,
	publisher messaging.Publisher,
	metrics RelayMetrics,
	interval time.Duration,
	batchSize int,
	logger *slog.Logger,
) *OutboxRelay {
	return &OutboxRelay{
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

func (w *OutboxRelay) Start(ctx context.Context) {
	w.logger.Info("outbox relay started", "interval", w.interval, "batch_size", w.batchSize)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox relay stopping")
			return
		case <-ticker.C:
			if _, err := w.RelayOnce(ctx); err != nil && ctx.Err() == nil {
				w.logger.Error("outbox relay failed", "error", err)
			}
		}
	}
}

// RelayOnce drains full batches until the outbox is empty and returns the
// number of messages published.
func (w *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	total := 0
	for {
		n, err := w.store.ProcessBatch(ctx, w.batchSize, w.publish)
		total += n
		if n > 0 {
			if w.metrics != nil {
				w.metrics.OutboxRelayed(n)
			}
			w.logger.Debug("relayed outbox messages", "count", n)
		}
		if err != nil {
			return total, err
		}
		if n < w.batchSize {
			return total, nil
		}
	}
}

func (w *OutboxRelay) publish(ctx context.Context, msgs []domain.OutboxMessage) error {
	return w.publisher.Publish(ctx, msgs...)
}
