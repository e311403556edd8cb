// Package domain encodes the storefront entities and the order lifecycle.
package domain

import (
	"slices"
	"strings"
	"time"
)

// OrderStatus represents the current state of an order in its lifecycle
type OrderStatus string

const (
	StatusPending OrderStatus = "PENDING"
	StatusPaid    OrderStatus = "PAID"
)

// Item is a product reference and quantity. Items are immutable once the
// order is created.
type Item struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"qty"`
}

type Order struct {
	ID          string
	OwnerEmail  string
	Items       []Item
	AmountCents int64
	Currency    string
	Status      OrderStatus

	// PaymentReference is the processor object (intent or checkout session)
	// whose completion paid the order.
	PaymentReference *string

	CreatedAt time.Time
	PaidAt    *time.Time
}

func NewOrder(
	id string,
	ownerEmail string,
	items []Item,
	amountCents int64,
	currency string,
	createdAt time.Time,
) (*Order, error) {
	if id == "" {
		return nil, NewValidationError("order ID is required")
	}
	ownerEmail = strings.TrimSpace(ownerEmail)
	if ownerEmail == "" {
		return nil, NewValidationError("owner email is required")
	}
	if len(items) == 0 {
		return nil, NewValidationError("order must contain at least one item")
	}
	for i, item := range items {
		if strings.TrimSpace(item.SKU) == "" {
			return nil, NewValidationError("item %d: sku is required", i)
		}
		if item.Quantity <= 0 {
			return nil, NewValidationError("item %d: quantity must be positive, got %d", i, item.Quantity)
		}
	}
	if amountCents <= 0 {
		return nil, NewValidationError("amount must be a positive integer, got %d", amountCents)
	}
	if currency == "" {
		return nil, NewValidationError("currency is required")
	}

	return &Order{
		ID:          id,
		OwnerEmail:  ownerEmail,
		Items:       slices.Clone(items),
		AmountCents: amountCents,
		Currency:    strings.ToLower(currency),
		Status:      StatusPending,
		CreatedAt:   createdAt,
	}, nil
}

// MarkPaid moves a pending order to paid. The persistent store applies the
// same transition as a conditional update; this method keeps in-memory
// copies consistent with it.
func (o *Order) MarkPaid(paymentReference string, paidAt time.Time) error {
	if err := o.canTransitionTo(StatusPaid); err != nil {
		return err
	}
	o.Status = StatusPaid
	o.PaidAt = &paidAt
	if paymentReference != "" {
		o.PaymentReference = &paymentReference
	}
	return nil
}

func (o *Order) canTransitionTo(target OrderStatus) error {
	switch o.Status {
	case StatusPending:
		if target == StatusPaid {
			return nil
		}
	}
	return NewInvalidTransitionError(o.Status, target)
}

func (o *Order) IsPaid() bool {
	return o.Status == StatusPaid
}

// Reconstitute - Special constructor for loading from DB
func Reconstitute(
	id, ownerEmail string,
	items []Item,
	amountCents int64, currency string,
	status OrderStatus,
	paymentReference *string,
	createdAt time.Time, paidAt *time.Time,
) *Order {
	return &Order{
		ID:               id,
		OwnerEmail:       ownerEmail,
		Items:            items,
		AmountCents:      amountCents,
		Currency:         currency,
		Status:           status,
		PaymentReference: paymentReference,
		CreatedAt:        createdAt,
		PaidAt:           paidAt,
	}
}
