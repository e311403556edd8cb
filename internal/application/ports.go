package application

import (
	"context"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/DanielPopoola/ficmart-storefront/internal/infrastructure/payment"
)

// OrderRepository is the port for order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByOwner(ctx context.Context, ownerEmail string, limit, offset int) ([]*domain.Order, error)
	// MarkPaid performs the conditional PENDING -> PAID update. applied is
	// false when no pending order matched.
	MarkPaid(ctx context.Context, id, paymentReference string, paidAt time.Time) (order *domain.Order, applied bool, err error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
}

// PaymentProcessor is the port for the external payment processor.
type PaymentProcessor interface {
	CreatePaymentIntent(ctx context.Context, req payment.CreateIntentRequest, idempotencyKey string) (*payment.IntentResponse, error)
}

// SessionIssuer issues and revokes login sessions.
type SessionIssuer interface {
	Issue(email string) (token string, expiresAt time.Time, err error)
	Revoke(ctx context.Context, token string) error
}

// Metrics records business counters; a nil value disables recording.
type Metrics interface {
	OrderCreated()
	OrderPaid()
}
