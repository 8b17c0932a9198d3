package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	types "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/application/types"
	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/domain"
	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/ports"
)

// Service orchestrates the fulfillment bounded context: order entry at the
// edges, shipment validation and stock reconciliation at the core.
type Service struct {
	orders    ports.OrderRepository
	shipments ports.ShipmentRepository
	stock     ports.StockView
	now       func() time.Time
}

// NewService wires the fulfillment service with its dependencies.
func NewService(orders ports.OrderRepository, shipments ports.ShipmentRepository, stock ports.StockView) *Service {
	return &Service{orders: orders, shipments: shipments, stock: stock, now: time.Now}
}

// CreateOrder drafts a new sales order.
func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*domain.SalesOrder, error) {
	lines := make([]domain.OrderLine, 0, len(input.Lines))
	for _, line := range input.Lines {
		lines = append(lines, domain.OrderLine{ProductID: line.ProductID, Ordered: line.Quantity})
	}
	order, err := domain.NewSalesOrder(input.Number, input.CustomerID, lines)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.orders.Save(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ConfirmOrder moves a draft order into the shippable lifecycle.
func (s *Service) ConfirmOrder(ctx context.Context, orderID int64) (*domain.SalesOrder, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Confirm(s.now()); err != nil {
		if errors.Is(err, domain.ErrNotConfirmable) {
			return nil, fmt.Errorf("%w: order %s is %s", ErrInvalidState, order.Number, order.Status)
		}
		return nil, mapError(err)
	}
	saved, err := s.orders.Save(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetOrderByID loads a sales order with its lines.
func (s *Service) GetOrderByID(ctx context.Context, orderID int64) (*domain.SalesOrder, error) {
	return s.orders.GetByID(ctx, orderID)
}

// ListShipments returns the immutable shipment history of an order.
func (s *Service) ListShipments(ctx context.Context, orderID int64) ([]*domain.Shipment, error) {
	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.shipments.ListByOrder(ctx, orderID)
}

// ValidateShipment runs one reconciliation pass end-to-end. Each step gates
// the next; a failure before the final status write leaves the order in its
// prior consistent state. The shipment insert, the per-line ledger updates,
// and the status write are sequential, so a failure between them surfaces as
// ErrInconsistentQuantity with the shipment row already persisted; the repair
// pass closes that window.
func (s *Service) ValidateShipment(ctx context.Context, input types.ValidateShipmentInput) (*types.ValidateShipmentResult, error) {
	// Step 1: shape validation, before any read.
	if err := validateShape(input); err != nil {
		return nil, err
	}

	// Step 2: order eligibility.
	order, err := s.orders.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if !order.Shippable() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrInvalidState, order.Number, order.Status)
	}

	// Zero-quantity items are silently skipped; they let a multi-line request
	// cover only some of its lines.
	toShip := make([]domain.ShipmentLine, 0, len(input.Items))
	for _, item := range input.Items {
		if item.QuantityToShip == 0 {
			continue
		}
		if item.QuantityToShip < 0 {
			return nil, fmt.Errorf("%w: quantity to ship must not be negative", ErrInvalidRequest)
		}
		line, ok := order.LineByID(item.OrderLineID)
		if !ok {
			return nil, fmt.Errorf("%w: line %d does not belong to order %s", ErrInvalidRequest, item.OrderLineID, order.Number)
		}
		if line.ProductID != item.ProductID {
			return nil, fmt.Errorf("%w: line %d is for product %d, not %d", ErrInvalidRequest, line.ID, line.ProductID, item.ProductID)
		}
		if item.QuantityToShip > line.Remaining() {
			return nil, fmt.Errorf("%w: line %d has %d remaining, requested %d",
				domain.ErrOverShipment, line.ID, line.Remaining(), item.QuantityToShip)
		}
		toShip = append(toShip, domain.ShipmentLine{
			OrderLineID: item.OrderLineID,
			ProductID:   item.ProductID,
			Quantity:    item.QuantityToShip,
		})
	}
	if len(toShip) == 0 {
		return nil, fmt.Errorf("%w: no items with a quantity to ship", ErrInvalidRequest)
	}

	// Step 3: per-line stock sufficiency. Advisory only; on-hand stock can
	// move between this read and the writes below, the store stays the final
	// arbiter.
	for _, line := range toShip {
		onHand, err := s.stock.OnHand(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if line.Quantity > onHand {
			return nil, &InsufficientStockError{ProductID: line.ProductID, Requested: line.Quantity, OnHand: onHand}
		}
	}

	// Step 4: persist the shipment header and lines, all or nothing.
	shippedAt := s.now()
	if input.ShippedAt != nil {
		shippedAt = *input.ShippedAt
	}
	shipment, lines, err := domain.NewShipment(order.ID, domain.CarrierInfo{
		Type:           input.Carrier.Type,
		Name:           input.Carrier.Name,
		TrackingNumber: input.Carrier.TrackingNumber,
	}, domain.Address(input.Address), toShip, shippedAt, input.ShippedBy, input.Notes)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.shipments.Create(ctx, shipment, lines)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	// Step 5: update the per-line ledger. The bound check re-reads fresh
	// totals inside the store, so a concurrent pass that won the race turns
	// up here as an over-shipment even though step 2 looked fine.
	for _, line := range lines {
		if _, err := s.orders.RecordLineShipment(ctx, line.OrderLineID, line.Quantity); err != nil {
			if errors.Is(err, domain.ErrOverShipment) {
				return nil, fmt.Errorf("%w: shipment %s, line %d", ErrInconsistentQuantity, created.ID, line.OrderLineID)
			}
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}

	// Step 6: recompute the order status from the full, now-updated line set.
	updated, err := s.orders.GetByID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	next := domain.NextStatus(updated.Status, updated.Lines)
	if next != updated.Status {
		if err := s.orders.UpdateStatus(ctx, order.ID, next); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}
	if updated.FirstShippedAt == nil {
		if err := s.orders.StampFirstShipment(ctx, order.ID, shippedAt, shipment.ShippedBy); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}

	return &types.ValidateShipmentResult{
		OrderNumber:    order.Number,
		NewStatus:      next,
		ShipmentID:     created.ID,
		TrackingNumber: created.Carrier.TrackingNumber,
		ItemsShipped:   len(lines),
	}, nil
}

func validateShape(input types.ValidateShipmentInput) error {
	if input.OrderID <= 0 {
		return fmt.Errorf("%w: sales order id is required", ErrInvalidRequest)
	}
	if len(input.Items) == 0 {
		return fmt.Errorf("%w: items must not be empty", ErrInvalidRequest)
	}
	if input.Carrier.Type == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, domain.ErrMissingCarrier)
	}
	if input.Address.Line1 == "" || input.Address.City == "" ||
		input.Address.PostalCode == "" || input.Address.Country == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, domain.ErrMissingAddress)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
