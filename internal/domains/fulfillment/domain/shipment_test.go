package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validCarrier() CarrierInfo {
	return CarrierInfo{Type: "ups", Name: "UPS", TrackingNumber: "1Z999"}
}

func validAddress() Address {
	return Address{Line1: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US"}
}

func TestNewShipment(t *testing.T) {
	shippedAt := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)
	shipment, lines, err := NewShipment(42, validCarrier(), validAddress(),
		[]ShipmentLine{{OrderLineID: 1, ProductID: 9, Quantity: 2}}, shippedAt, " warehouse-7 ", " left at dock ")
	require.NoError(t, err)
	require.NotEmpty(t, shipment.ID)
	require.Equal(t, int64(42), shipment.OrderID)
	require.Equal(t, "warehouse-7", shipment.ShippedBy)
	require.Equal(t, "left at dock", shipment.Notes)
	require.Len(t, lines, 1)
	require.Equal(t, shipment.ID, lines[0].ShipmentID)
}

func TestNewShipment_UniqueIDs(t *testing.T) {
	line := []ShipmentLine{{OrderLineID: 1, ProductID: 9, Quantity: 1}}
	a, _, err := NewShipment(1, validCarrier(), validAddress(), line, time.Now(), "", "")
	require.NoError(t, err)
	b, _, err := NewShipment(1, validCarrier(), validAddress(), line, time.Now(), "", "")
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
}

func TestNewShipment_Rejections(t *testing.T) {
	line := []ShipmentLine{{OrderLineID: 1, ProductID: 9, Quantity: 1}}

	_, _, err := NewShipment(1, CarrierInfo{}, validAddress(), line, time.Now(), "", "")
	require.ErrorIs(t, err, ErrMissingCarrier)

	_, _, err = NewShipment(1, validCarrier(), Address{Line1: "1 Main St"}, line, time.Now(), "", "")
	require.ErrorIs(t, err, ErrMissingAddress)

	_, _, err = NewShipment(1, validCarrier(), validAddress(), nil, time.Now(), "", "")
	require.ErrorIs(t, err, ErrEmptyShipmentLines)

	_, _, err = NewShipment(1, validCarrier(), validAddress(),
		[]ShipmentLine{{OrderLineID: 1, ProductID: 9, Quantity: 0}}, time.Now(), "", "")
	require.ErrorIs(t, err, ErrInvalidShipmentQty)

	_, _, err = NewShipment(1, validCarrier(), validAddress(),
		[]ShipmentLine{{OrderLineID: 1, ProductID: 9, Quantity: -2}}, time.Now(), "", "")
	require.ErrorIs(t, err, ErrInvalidShipmentQty)
}
