package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-retail-backoffice/internal/domains/customers/adapters/memory"
	"github.com/Apurer/go-retail-backoffice/internal/domains/customers/domain"
	"github.com/Apurer/go-retail-backoffice/internal/domains/customers/ports"
)

func TestCreateCustomer_ValidatesAndPersists(t *testing.T) {
	svc := NewService(memory.NewRepository())

	saved, err := svc.CreateCustomer(context.Background(), &domain.Customer{
		Name:   "Acme Ltd",
		Email:  "ops@acme.example",
		Active: true,
	})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	require.Equal(t, "Acme Ltd", saved.Name)
}

func TestCreateCustomer_InvalidInput(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.CreateCustomer(context.Background(), &domain.Customer{Name: "  "})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = svc.CreateCustomer(context.Background(), &domain.Customer{Name: "Acme", Email: "not-an-email"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestUpdateCustomer_AppliesChanges(t *testing.T) {
	svc := NewService(memory.NewRepository())
	saved, err := svc.CreateCustomer(context.Background(), &domain.Customer{Name: "Acme", Active: true})
	require.NoError(t, err)

	updated, err := svc.UpdateCustomer(context.Background(), &domain.Customer{
		ID:           saved.ID,
		Name:         "Acme Retail",
		Email:        "billing@acme.example",
		Organisation: "Acme Group",
		BillingLine1: "1 Main St",
		BillingCity:  "Springfield",
		BillingZip:   "12345",
		Country:      "US",
		Active:       true,
	})
	require.NoError(t, err)
	require.Equal(t, "Acme Retail", updated.Name)
	require.Equal(t, "Acme Group", updated.Organisation)
	require.Equal(t, "Springfield", updated.BillingCity)
}

func TestUpdateCustomer_UnknownID(t *testing.T) {
	svc := NewService(memory.NewRepository())
	_, err := svc.UpdateCustomer(context.Background(), &domain.Customer{ID: 404, Name: "Ghost"})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDeleteCustomer(t *testing.T) {
	svc := NewService(memory.NewRepository())
	saved, err := svc.CreateCustomer(context.Background(), &domain.Customer{Name: "Acme", Active: true})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCustomer(context.Background(), saved.ID))
	_, err = svc.GetCustomerByID(context.Background(), saved.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)

	require.ErrorIs(t, svc.DeleteCustomer(context.Background(), saved.ID), ports.ErrNotFound)
}
