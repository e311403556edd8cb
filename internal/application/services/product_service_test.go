package services_test

import (
	"context"
	"testing"

	"github.com/DanielPopoola/ficmart-storefront/internal/application/services"
	"github.com/DanielPopoola/ficmart-storefront/internal/application/services/testhelpers"
	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService(t *testing.T) {
	ctx := context.Background()
	repo := testhelpers.NewMemoryProductRepository()
	svc := services.NewProductService(repo, "usd")

	p, err := svc.CreateProduct(ctx, "Mug", "Stoneware", "12.99")
	require.NoError(t, err)
	assert.Equal(t, int64(1299), p.PriceCents)
	assert.Equal(t, "usd", p.Currency)

	_, err = svc.CreateProduct(ctx, "Mug", "", "12.999")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateProduct(ctx, "", "", "1.00")
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := svc.ListProducts(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mug", got.Name)
}
