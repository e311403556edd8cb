package services

import (
	"context"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/application"
	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/google/uuid"
)

type ProductService struct {
	products application.ProductRepository
	currency string
}

func NewProductService(products application.ProductRepository, currency string) *ProductService {
	return &ProductService{products: products, currency: currency}
}

// CreateProduct takes the price as a decimal string in major units, e.g. "12.99".
func (s *ProductService) CreateProduct(ctx context.Context, name, description, price string) (*domain.Product, error) {
	cents, err := domain.ParsePrice(price)
	if err != nil {
		return nil, err
	}

	product, err := domain.NewProduct(uuid.NewString(), name, description, cents, s.currency, time.Now().UTC().Truncate(time.Microsecond))
	if err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	limit, offset = normalizePage(limit, offset)
	return s.products.List(ctx, limit, offset)
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}
