package ports

import (
	"context"

	types "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/application/types"
	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/domain"
)

// Service exposes the fulfillment use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input types.CreateOrderInput) (*domain.SalesOrder, error)
	ConfirmOrder(ctx context.Context, orderID int64) (*domain.SalesOrder, error)
	GetOrderByID(ctx context.Context, orderID int64) (*domain.SalesOrder, error)
	ValidateShipment(ctx context.Context, input types.ValidateShipmentInput) (*types.ValidateShipmentResult, error)
	ListShipments(ctx context.Context, orderID int64) ([]*domain.Shipment, error)
	RepairOrderLedger(ctx context.Context, orderID int64) (*types.RepairReport, error)
}
