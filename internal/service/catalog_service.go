package service

import (
	"context"

	"mudia/internal/domain"
	"mudia/internal/repository"
)

// CatalogService витрина каталога. Данные справочные, только чтение.
type CatalogService struct {
	products repository.ProductRepository
}

func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.products.GetByID(ctx, id)
}

func (s *CatalogService) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, f)
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.products.Categories(ctx)
}
