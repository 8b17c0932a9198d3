package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/domain"
)

var (
	ErrNotFound        = errors.New("sales order not found")
	ErrLineNotFound    = errors.New("order line not found")
	ErrProductNotFound = errors.New("product not found")
)

// OrderRepository persists sales orders and their per-line shipped ledger.
type OrderRepository interface {
	Save(ctx context.Context, order *domain.SalesOrder) (*domain.SalesOrder, error)
	GetByID(ctx context.Context, id int64) (*domain.SalesOrder, error)
	// RecordLineShipment adds delta to the line's cumulative shipped total.
	// The bound check and the write are a single atomic operation: the update
	// only applies while shipped + delta <= ordered, and a violation returns
	// domain.ErrOverShipment without touching the row.
	RecordLineShipment(ctx context.Context, lineID int64, delta int64) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.Status) error
	// StampFirstShipment records the first-shipment timestamp and actor, only
	// if the order has never shipped before.
	StampFirstShipment(ctx context.Context, orderID int64, shippedAt time.Time, shippedBy string) error
}

// ShipmentRepository appends immutable shipment events.
type ShipmentRepository interface {
	// Create persists the header and all of its lines together or not at all.
	Create(ctx context.Context, shipment *domain.Shipment, lines []domain.ShipmentLine) (*domain.Shipment, error)
	ListByOrder(ctx context.Context, orderID int64) ([]*domain.Shipment, error)
	LinesByOrder(ctx context.Context, orderID int64) ([]domain.ShipmentLine, error)
}

// StockView reads current on-hand stock for a product. No side effects; the
// value is a volatile external fact that may change between read and write.
type StockView interface {
	OnHand(ctx context.Context, productID int64) (int64, error)
}
