package ports

import (
	"context"

	"github.com/Apurer/go-retail-backoffice/internal/domains/catalog/domain"
)

// Service exposes catalogue use cases to adapters and sibling contexts.
type Service interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// UpdateProduct replaces the descriptive fields of an existing product.
	// The on-hand counter only moves through AdjustStock.
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	AdjustStock(ctx context.Context, id int64, delta int64) (int64, error)
	// OnHand reports the current on-hand quantity for a product. Read-only;
	// fulfillment consumes this as its stock view.
	OnHand(ctx context.Context, id int64) (int64, error)
}
