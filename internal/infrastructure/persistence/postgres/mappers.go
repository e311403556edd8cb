package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, owner_email, items, amount_cents, currency, status, payment_reference, created_at, paid_at`

// toOrderModel - Domain → Database
func toOrderModel(o *domain.Order) (OrderModel, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return OrderModel{}, fmt.Errorf("encode order items: %w", err)
	}
	return OrderModel{
		ID:               o.ID,
		OwnerEmail:       o.OwnerEmail,
		Items:            items,
		AmountCents:      o.AmountCents,
		Currency:         o.Currency,
		Status:           string(o.Status),
		PaymentReference: o.PaymentReference,
		CreatedAt:        o.CreatedAt,
		PaidAt:           o.PaidAt,
	}, nil
}

// toOrderDomain - Database → Domain
func toOrderDomain(m OrderModel) (*domain.Order, error) {
	var items []domain.Item
	if err := json.Unmarshal(m.Items, &items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return domain.Reconstitute(
		m.ID,
		m.OwnerEmail,
		items,
		m.AmountCents,
		m.Currency,
		domain.OrderStatus(m.Status),
		m.PaymentReference,
		m.CreatedAt,
		m.PaidAt,
	), nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var m OrderModel
	if err := row.Scan(
		&m.ID, &m.OwnerEmail, &m.Items, &m.AmountCents, &m.Currency,
		&m.Status, &m.PaymentReference, &m.CreatedAt, &m.PaidAt,
	); err != nil {
		return nil, err
	}
	return toOrderDomain(m)
}

func toUserDomain(m UserModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func toProductDomain(m ProductModel) *domain.Product {
	return &domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		PriceCents:  m.PriceCents,
		Currency:    m.Currency,
		CreatedAt:   m.CreatedAt,
	}
}
