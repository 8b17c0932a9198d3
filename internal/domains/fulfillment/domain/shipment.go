package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingCarrier     = errors.New("carrier type is required")
	ErrMissingAddress     = errors.New("destination address is incomplete")
	ErrEmptyShipmentLines = errors.New("shipment must cover at least one line")
	ErrInvalidShipmentQty = errors.New("shipment line quantity must be greater than zero")
)

// CarrierInfo describes who moves the shipment.
type CarrierInfo struct {
	Type           string
	Name           string
	TrackingNumber string
}

// Address is the destination snapshot copied onto the shipment at creation
// time. It is never a live reference to a customer record.
type Address struct {
	Line1      string
	Line2      string
	City       string
	Region     string
	PostalCode string
	Country    string
}

// Shipment is one physical dispatch event. Immutable once created; a
// correction is a new shipment, never an update.
type Shipment struct {
	ID        string
	OrderID   int64
	Carrier   CarrierInfo
	Address   Address
	Notes     string
	ShippedAt time.Time
	ShippedBy string
	CreatedAt time.Time
}

// ShipmentLine records the quantity dispatched for one order line in this
// shipment event, distinct from the order line's cumulative total.
type ShipmentLine struct {
	ID          int64
	ShipmentID  string
	OrderLineID int64
	ProductID   int64
	Quantity    int64
}

// NewShipment validates and constructs a shipment header with its lines.
func NewShipment(orderID int64, carrier CarrierInfo, address Address, lines []ShipmentLine, shippedAt time.Time, shippedBy, notes string) (*Shipment, []ShipmentLine, error) {
	if strings.TrimSpace(carrier.Type) == "" {
		return nil, nil, ErrMissingCarrier
	}
	if err := validateAddress(address); err != nil {
		return nil, nil, err
	}
	if len(lines) == 0 {
		return nil, nil, ErrEmptyShipmentLines
	}
	shipment := &Shipment{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		Carrier:   carrier,
		Address:   address,
		Notes:     strings.TrimSpace(notes),
		ShippedAt: shippedAt,
		ShippedBy: strings.TrimSpace(shippedBy),
	}
	out := make([]ShipmentLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, nil, ErrInvalidShipmentQty
		}
		line.ShipmentID = shipment.ID
		out = append(out, line)
	}
	return shipment, out, nil
}

func validateAddress(address Address) error {
	if strings.TrimSpace(address.Line1) == "" ||
		strings.TrimSpace(address.City) == "" ||
		strings.TrimSpace(address.PostalCode) == "" ||
		strings.TrimSpace(address.Country) == "" {
		return ErrMissingAddress
	}
	return nil
}
