package domain

import (
	"strings"
	"time"
)

type Product struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	Currency    string
	CreatedAt   time.Time
}

func NewProduct(id, name, description string, priceCents int64, currency string, createdAt time.Time) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("product name is required")
	}
	if priceCents <= 0 {
		return nil, NewValidationError("price must be positive, got %d", priceCents)
	}
	return &Product{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(description),
		PriceCents:  priceCents,
		Currency:    strings.ToLower(currency),
		CreatedAt:   createdAt,
	}, nil
}
