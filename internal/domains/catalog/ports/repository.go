package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-retail-backoffice/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository persists products and their stock counters.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	// AdjustStock applies the delta as one conditional write: the update only
	// lands while on_hand + delta >= 0, otherwise domain.ErrNegativeStock.
	AdjustStock(ctx context.Context, id int64, delta int64) (int64, error)
}
