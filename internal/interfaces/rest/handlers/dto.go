package handlers

import (
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
)

type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       string `json:"price" validate:"required"`
}

type ItemRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"qty"`
}

// CreateOrderRequest is checked by the ledger, not by struct tags, so the
// same rules apply to every caller.
type CreateOrderRequest struct {
	Items  []ItemRequest `json:"items"`
	Amount int64         `json:"amount"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Price       string    `json:"price"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderResponse struct {
	ID               string        `json:"id"`
	OwnerEmail       string        `json:"owner_email"`
	Items            []domain.Item `json:"items"`
	AmountCents      int64         `json:"amount"`
	AmountDisplay    string        `json:"amount_display"`
	Currency         string        `json:"currency"`
	Status           string        `json:"status"`
	PaymentReference *string       `json:"payment_reference,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	PaidAt           *time.Time    `json:"paid_at,omitempty"`
}

type PaymentIntentResponse struct {
	OrderID      string `json:"order_id"`
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Price:       domain.FormatCents(p.PriceCents),
		Currency:    p.Currency,
		CreatedAt:   p.CreatedAt,
	}
}

func toOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:               o.ID,
		OwnerEmail:       o.OwnerEmail,
		Items:            o.Items,
		AmountCents:      o.AmountCents,
		AmountDisplay:    domain.FormatCents(o.AmountCents),
		Currency:         o.Currency,
		Status:           string(o.Status),
		PaymentReference: o.PaymentReference,
		CreatedAt:        o.CreatedAt,
		PaidAt:           o.PaidAt,
	}
}
