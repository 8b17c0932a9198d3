package ports

import (
	"context"

	"github.com/Apurer/go-retail-backoffice/internal/domains/customers/domain"
)

// Service exposes customer record use cases to adapters.
type Service interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}
