package types

import (
	"time"

	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/domain"
)

// OrderLineInput describes one product entry when drafting an order.
type OrderLineInput struct {
	ProductID int64
	Quantity  int64
}

// CreateOrderInput drafts a new sales order.
type CreateOrderInput struct {
	Number     string
	CustomerID int64
	Lines      []OrderLineInput
}

// ShipmentItemInput is one requested line of a shipment validation.
type ShipmentItemInput struct {
	OrderLineID    int64
	ProductID      int64
	QuantityToShip int64
}

// CarrierInput carries the carrier metadata of a shipment request.
type CarrierInput struct {
	Type           string
	Name           string
	TrackingNumber string
}

// AddressInput is the destination address of a shipment request.
type AddressInput struct {
	Line1      string
	Line2      string
	City       string
	Region     string
	PostalCode string
	Country    string
}

// ValidateShipmentInput is the full shipment validation request.
type ValidateShipmentInput struct {
	OrderID   int64
	Items     []ShipmentItemInput
	Carrier   CarrierInput
	Address   AddressInput
	ShippedAt *time.Time
	ShippedBy string
	Notes     string
}

// ValidateShipmentResult reports a successful reconciliation pass.
type ValidateShipmentResult struct {
	OrderNumber    string
	NewStatus      domain.Status
	ShipmentID     string
	TrackingNumber string
	ItemsShipped   int
}

// RepairReport summarizes one ledger repair pass over an order.
type RepairReport struct {
	OrderID        int64
	OrderNumber    string
	LinesAdjusted  int
	UnitsRecovered int64
	ManualReview   []int64
	Status         domain.Status
}
