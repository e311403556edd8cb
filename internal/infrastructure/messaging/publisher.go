// Package messaging relays order outbox events to the message bus.
package messaging

import (
	"context"

	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
)

// Publisher delivers outbox messages. Implementations must be safe for
// concurrent use; a returned error leaves the batch unprocessed.
type Publisher interface {
	Publish(ctx context.Context, msgs ...domain.OutboxMessage) error
	Close() error
}
