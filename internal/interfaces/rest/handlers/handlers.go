// Package handlers adapts HTTP requests to the storefront services.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/application/services"
	"github.com/DanielPopoola/ficmart-storefront/internal/config"
	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/go-playground/validator"
)

type OrderLedger interface {
	CreateOrder(ctx context.Context, ownerEmail string, items []domain.Item, amountCents int64) (*domain.Order, error)
	GetOrder(ctx context.Context, principalEmail, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, principalEmail string, limit, offset int) ([]*domain.Order, error)
}

type UserService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, time.Time, error)
	Logout(ctx context.Context, token string) error
}

type ProductService interface {
	CreateProduct(ctx context.Context, name, description, price string) (*domain.Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]*domain.Product, error)
}

type PaymentService interface {
	CreateIntent(ctx context.Context, principalEmail, orderID string) (*services.PaymentIntent, error)
}

type Handlers struct {
	ledger   OrderLedger
	users    UserService
	products ProductService
	payments PaymentService
	session  config.SessionConfig
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandlers(
	ledger OrderLedger,
	users UserService,
	products ProductService,
	payments PaymentService,
	session config.SessionConfig,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		ledger:   ledger,
		users:    users,
		products: products,
		payments: payments,
		session:  session,
		validate: validator.New(),
		logger:   logger,
	}
}

// decode reads a JSON body into dst and runs struct validation.
func (h *Handlers) decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("invalid JSON body: %v", err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return domain.NewValidationError("%s", err.Error())
	}
	return nil
}

func pagination(r *http.Request) (limit, offset int) {
	q := r.URL.Query()
	limit, _ = strconv.Atoi(q.Get("limit"))
	offset, _ = strconv.Atoi(q.Get("offset"))
	return limit, offset
}
