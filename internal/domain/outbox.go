package domain

import (
	"encoding/json"
	"time"
)

const (
	EventOrderCreated = "order.created"
	EventOrderPaid    = "order.paid"
)

// OutboxMessage is an event recorded in the same transaction as the state
// change it describes, relayed to the message bus afterwards.
type OutboxMessage struct {
	ID          string
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// OrderEvent is the payload of every order outbox message.
type OrderEvent struct {
	EventID          string    `json:"event_id"`
	EventType        string    `json:"event_type"`
	OrderID          string    `json:"order_id"`
	OwnerEmail       string    `json:"owner_email"`
	Items            []Item    `json:"items"`
	AmountCents      int64     `json:"amount_cents"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	PaymentReference string    `json:"payment_reference,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// NewOrderOutboxMessage snapshots the order into an outbox message of the
// given event type.
func NewOrderOutboxMessage(id, eventType string, o *Order, occurredAt time.Time) (*OutboxMessage, error) {
	ev := OrderEvent{
		EventID:     id,
		EventType:   eventType,
		OrderID:     o.ID,
		OwnerEmail:  o.OwnerEmail,
		Items:       o.Items,
		AmountCents: o.AmountCents,
		Currency:    o.Currency,
		Status:      string(o.Status),
		OccurredAt:  occurredAt.UTC(),
	}
	if o.PaymentReference != nil {
		ev.PaymentReference = *o.PaymentReference
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}

	return &OutboxMessage{
		ID:          id,
		AggregateID: o.ID,
		EventType:   eventType,
		Payload:     payload,
		CreatedAt:   occurredAt,
	}, nil
}
