package webhook

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
)

// Ledger is the single order operation the dispatcher may invoke.
type Ledger interface {
	MarkPaid(ctx context.Context, orderID, paymentReference string) error
}

// Outcome labels what happened to an authenticated event.
type Outcome string

const (
	OutcomeProcessed        Outcome = "processed"
	OutcomeIgnored          Outcome = "ignored"
	OutcomeMissingReference Outcome = "missing_reference"
	OutcomeUnknownOrder     Outcome = "order_not_found"
)

type Dispatcher struct {
	ledger     Ledger
	recognized map[string]struct{}
	logger     *slog.Logger
}

// NewDispatcher treats every type in completionTypes as proof of payment.
func NewDispatcher(ledger Ledger, completionTypes []string, logger *slog.Logger) *Dispatcher {
	recognized := make(map[string]struct{}, len(completionTypes))
	for _, t := range completionTypes {
		recognized[t] = struct{}{}
	}
	return &Dispatcher{
		ledger:     ledger,
		recognized: recognized,
		logger:     logger,
	}
}

func (d *Dispatcher) Recognizes(eventType string) bool {
	_, ok := d.recognized[eventType]
	return ok
}

// Dispatch applies a verified event. Only storage failures are returned;
// everything else is acknowledged so the processor stops redelivering.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *PaymentEvent) (Outcome, error) {
	if !d.Recognizes(ev.Type) {
		d.logger.Debug("ignoring payment event", "event_id", ev.ID, "type", ev.Type)
		return OutcomeIgnored, nil
	}

	if ev.OrderReference == "" {
		d.logger.Warn("completion event carries no order reference",
			"event_id", ev.ID,
			"type", ev.Type,
			"source", ev.SourceIntentID,
		)
		return OutcomeMissingReference, nil
	}

	err := d.ledger.MarkPaid(ctx, ev.OrderReference, ev.SourceIntentID)
	switch {
	case err == nil:
		return OutcomeProcessed, nil
	case errors.Is(err, domain.ErrOrderNotFound):
		d.logger.Warn("completion event for unknown order",
			"event_id", ev.ID,
			"order_id", ev.OrderReference,
		)
		return OutcomeUnknownOrder, nil
	default:
		d.logger.Error("failed to apply payment event",
			"event_id", ev.ID,
			"order_id", ev.OrderReference,
			"error", err,
		)
		return "", err
	}
}
