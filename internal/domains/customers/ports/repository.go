package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-retail-backoffice/internal/domains/customers/domain"
)

var ErrNotFound = errors.New("customer not found")

// Repository persists customer records.
type Repository interface {
	Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
}
