package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/retailpulse/backend/internal/domain"
	"github.com/retailpulse/backend/internal/repository"
)

var ErrInvalidProduct = errors.New("service: invalid product")

type ProductService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListProducts(ctx)
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetProduct(ctx, id)
}

func (s *ProductService) CreateProduct(ctx context.Context, product *domain.Product) (int64, error) {
	if product.Name == "" {
		return 0, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	return s.products.CreateProduct(ctx, product)
}

func (s *ProductService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if product.ID == 0 {
		return fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}
	return s.products.UpdateProduct(ctx, product)
}
