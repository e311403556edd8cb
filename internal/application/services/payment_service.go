package services

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/ficmart-storefront/internal/application"
	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/DanielPopoola/ficmart-storefront/internal/infrastructure/payment"
)

// PaymentIntent is what the client needs to confirm a payment.
type PaymentIntent struct {
	OrderID      string
	IntentID     string
	ClientSecret string
	AmountCents  int64
	Currency     string
}

// PaymentService starts payments with the processor. The order only becomes
// paid once the processor's signed completion event arrives.
type PaymentService struct {
	ledger    *OrderLedger
	processor application.PaymentProcessor
	logger    *slog.Logger
}

func NewPaymentService(ledger *OrderLedger, processor application.PaymentProcessor, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		ledger:    ledger,
		processor: processor,
		logger:    logger,
	}
}

func (s *PaymentService) CreateIntent(ctx context.Context, principalEmail, orderID string) (*PaymentIntent, error) {
	order, err := s.ledger.GetOrder(ctx, principalEmail, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsPaid() {
		return nil, domain.NewAlreadyPaidError(order.ID)
	}

	// one intent per order, however often the client retries
	idempotencyKey := "order-" + order.ID

	resp, err := s.processor.CreatePaymentIntent(ctx, payment.CreateIntentRequest{
		AmountCents:  order.AmountCents,
		Currency:     order.Currency,
		OrderID:      order.ID,
		ReceiptEmail: order.OwnerEmail,
	}, idempotencyKey)
	if err != nil {
		s.logger.Error("payment intent creation failed",
			"order_id", order.ID,
			"error", err,
		)
		if procErr, ok := payment.IsProcessorError(err); ok && !procErr.IsRetryable() {
			return nil, procErr
		}
		return nil, application.NewProcessorFailureError(err)
	}

	s.logger.Info("payment intent created",
		"order_id", order.ID,
		"intent_id", resp.ID,
	)

	return &PaymentIntent{
		OrderID:      order.ID,
		IntentID:     resp.ID,
		ClientSecret: resp.ClientSecret,
		AmountCents:  order.AmountCents,
		Currency:     order.Currency,
	}, nil
}
