package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-retail-backoffice/internal/domains/customers/domain"
	"github.com/Apurer/go-retail-backoffice/internal/domains/customers/ports"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid customer input")

// Service orchestrates customer record use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	if err := customer.Rename(customer.Name); err != nil {
		return nil, mapError(err)
	}
	if err := customer.UpdateContact(customer.Email, customer.Phone); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, customer)
}

func (s *Service) GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	existing, err := s.repo.GetByID(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	if err := existing.Rename(customer.Name); err != nil {
		return nil, mapError(err)
	}
	if err := existing.UpdateContact(customer.Email, customer.Phone); err != nil {
		return nil, mapError(err)
	}
	existing.Organisation = customer.Organisation
	existing.UpdateBillingAddress(customer.BillingLine1, customer.BillingCity, customer.BillingZip, customer.Country)
	existing.Active = customer.Active
	return s.repo.Save(ctx, existing)
}

func (s *Service) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.repo.List(ctx)
}

func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) || errors.Is(err, domain.ErrInvalidEmail) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
