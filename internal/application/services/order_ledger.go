package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/application"
	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// OrderLedger owns order creation and the single PENDING -> PAID transition.
type OrderLedger struct {
	orders   application.OrderRepository
	currency string
	metrics  application.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

func NewOrderLedger(
	orders application.OrderRepository,
	currency string,
	metrics application.Metrics,
	logger *slog.Logger,
) *OrderLedger {
	return &OrderLedger{
		orders:   orders,
		currency: currency,
		metrics:  metrics,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateOrder validates and stores a new PENDING order. Nothing is persisted
// when validation fails.
func (l *OrderLedger) CreateOrder(ctx context.Context, ownerEmail string, items []domain.Item, amountCents int64) (*domain.Order, error) {
	order, err := domain.NewOrder(
		uuid.NewString(),
		ownerEmail,
		items,
		amountCents,
		l.currency,
		l.now().Truncate(time.Microsecond),
	)
	if err != nil {
		return nil, err
	}

	if err := l.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if l.metrics != nil {
		l.metrics.OrderCreated()
	}
	l.logger.Info("order created",
		"order_id", order.ID,
		"owner", order.OwnerEmail,
		"amount_cents", order.AmountCents,
	)
	return order, nil
}

// MarkPaid transitions the order to PAID. Repeating it for an already paid
// order succeeds without side effects; an unknown order yields
// domain.ErrOrderNotFound.
func (l *OrderLedger) MarkPaid(ctx context.Context, orderID, paymentReference string) error {
	if orderID == "" {
		return domain.NewValidationError("order ID is required")
	}

	order, applied, err := l.orders.MarkPaid(ctx, orderID, paymentReference, l.now())
	if err != nil {
		return err
	}

	if applied {
		if l.metrics != nil {
			l.metrics.OrderPaid()
		}
		l.logger.Info("order marked paid",
			"order_id", order.ID,
			"payment_reference", paymentReference,
		)
		return nil
	}

	existing, err := l.orders.FindByID(ctx, orderID)
	if errors.Is(err, domain.ErrOrderNotFound) {
		l.logger.Warn("payment event references unknown order",
			"order_id", orderID,
			"payment_reference", paymentReference,
		)
		return err
	}
	if err != nil {
		return err
	}

	if existing.IsPaid() {
		l.logger.Debug("order already paid, ignoring duplicate",
			"order_id", orderID,
			"payment_reference", paymentReference,
		)
		return nil
	}

	return domain.NewInvalidTransitionError(existing.Status, domain.StatusPaid)
}

// GetOrder reports another owner's order as not found.
func (l *OrderLedger) GetOrder(ctx context.Context, principalEmail, orderID string) (*domain.Order, error) {
	order, err := l.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.OwnerEmail != principalEmail {
		return nil, domain.NewOrderNotFoundError(orderID)
	}
	return order, nil
}

func (l *OrderLedger) ListOrders(ctx context.Context, principalEmail string, limit, offset int) ([]*domain.Order, error) {
	limit, offset = normalizePage(limit, offset)
	return l.orders.FindByOwner(ctx, principalEmail, limit, offset)
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
