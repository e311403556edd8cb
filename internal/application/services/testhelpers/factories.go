package testhelpers

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// DiscardLogger keeps test output quiet.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// DefaultItems is the single-line basket used across tests.
func DefaultItems() []domain.Item {
	return []domain.Item{{SKU: "A", Quantity: 1}}
}

// NewPendingOrder builds a valid pending order owned by ownerEmail.
func NewPendingOrder(t *testing.T, ownerEmail string) *domain.Order {
	order, err := domain.NewOrder(
		uuid.NewString(),
		ownerEmail,
		DefaultItems(),
		5000,
		"usd",
		time.Now().UTC().Truncate(time.Microsecond),
	)
	require.NoError(t, err)
	return order
}

func NewProduct(t *testing.T, name string, priceCents int64) *domain.Product {
	p, err := domain.NewProduct(uuid.NewString(), name, name+" description", priceCents, "usd", time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, err)
	return p
}
