package webhook_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/DanielPopoola/ficmart-storefront/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) MarkPaid(ctx context.Context, orderID, paymentReference string) error {
	return m.Called(ctx, orderID, paymentReference).Error(0)
}

var completionTypes = []string{"checkout.session.completed", "payment_intent.succeeded"}

func newDispatcher(ledger webhook.Ledger) *webhook.Dispatcher {
	return webhook.NewDispatcher(ledger, completionTypes, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDispatcher_RecognizedTypes(t *testing.T) {
	for _, eventType := range completionTypes {
		t.Run(eventType, func(t *testing.T) {
			ledger := &mockLedger{}
			ledger.On("MarkPaid", mock.Anything, "ord-1", "pi_1").Return(nil).Once()

			outcome, err := newDispatcher(ledger).Dispatch(context.Background(), &webhook.PaymentEvent{
				ID: "evt_1", Type: eventType, OrderReference: "ord-1", SourceIntentID: "pi_1",
			})

			require.NoError(t, err)
			assert.Equal(t, webhook.OutcomeProcessed, outcome)
			ledger.AssertExpectations(t)
		})
	}
}

func TestDispatcher_UnrecognizedTypeNeverMarksPaid(t *testing.T) {
	for _, eventType := range []string{"payment_intent.created", "charge.refunded", "checkout.session.expired", ""} {
		ledger := &mockLedger{}

		outcome, err := newDispatcher(ledger).Dispatch(context.Background(), &webhook.PaymentEvent{
			ID: "evt", Type: eventType, OrderReference: "ord-1", SourceIntentID: "pi_1",
		})

		require.NoError(t, err)
		assert.Equal(t, webhook.OutcomeIgnored, outcome)
		ledger.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestDispatcher_MissingReference(t *testing.T) {
	ledger := &mockLedger{}

	outcome, err := newDispatcher(ledger).Dispatch(context.Background(), &webhook.PaymentEvent{
		ID: "evt", Type: "payment_intent.succeeded", SourceIntentID: "pi_1",
	})

	require.NoError(t, err)
	assert.Equal(t, webhook.OutcomeMissingReference, outcome)
	ledger.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_UnknownOrderIsSwallowed(t *testing.T) {
	ledger := &mockLedger{}
	ledger.On("MarkPaid", mock.Anything, "ghost", "pi_1").Return(domain.NewOrderNotFoundError("ghost"))

	outcome, err := newDispatcher(ledger).Dispatch(context.Background(), &webhook.PaymentEvent{
		ID: "evt", Type: "payment_intent.succeeded", OrderReference: "ghost", SourceIntentID: "pi_1",
	})

	require.NoError(t, err)
	assert.Equal(t, webhook.OutcomeUnknownOrder, outcome)
}

func TestDispatcher_StorageFailureIsReturned(t *testing.T) {
	ledger := &mockLedger{}
	boom := errors.New("connection refused")
	ledger.On("MarkPaid", mock.Anything, "ord-1", "pi_1").Return(boom)

	_, err := newDispatcher(ledger).Dispatch(context.Background(), &webhook.PaymentEvent{
		ID: "evt", Type: "payment_intent.succeeded", OrderReference: "ord-1", SourceIntentID: "pi_1",
	})

	assert.ErrorIs(t, err, boom)
}
