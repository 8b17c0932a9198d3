package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-retail-backoffice/internal/domains/catalog/domain"
	"github.com/Apurer/go-retail-backoffice/internal/domains/catalog/ports"
)

// Service orchestrates catalogue use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, product)
}

func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil || product.ID == 0 {
		return nil, fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.GetByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	// The stock counter stays owned by AdjustStock.
	product.OnHand = existing.OnHand
	return s.repo.Save(ctx, product)
}

func (s *Service) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return s.repo.GetBySKU(ctx, sku)
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) AdjustStock(ctx context.Context, id int64, delta int64) (int64, error) {
	newOnHand, err := s.repo.AdjustStock(ctx, id, delta)
	if err != nil {
		return 0, mapError(err)
	}
	return newOnHand, nil
}

func (s *Service) OnHand(ctx context.Context, id int64) (int64, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return product.OnHand, nil
}

var _ ports.Service = (*Service)(nil)
