package noop

import (
	"context"

	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
)

// Publisher is a no-op messaging.Publisher used when Kafka is not configured.
type Publisher struct{}

func (Publisher) Publish(_ context.Context, _ ...domain.OutboxMessage) error { return nil }

func (Publisher) Close() error { return nil }
