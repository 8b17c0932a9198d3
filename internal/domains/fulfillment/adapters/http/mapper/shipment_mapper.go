package mapper

import (
	"time"

	types "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/application/types"
	fulfillmentdomain "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/domain"
)

// CreateOrderRequest is the transport shape for drafting an order.
type CreateOrderRequest struct {
	Number     string                   `json:"number" binding:"required"`
	CustomerID int64                    `json:"customerId"`
	Lines      []CreateOrderLineRequest `json:"lines" binding:"required"`
}

type CreateOrderLineRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// ValidateShipmentRequest is the transport shape of one shipment validation.
type ValidateShipmentRequest struct {
	Items     []ShipmentItemRequest `json:"items"`
	Carrier   CarrierRequest        `json:"carrierInfo"`
	Address   AddressRequest        `json:"shippingAddress"`
	ShippedAt *time.Time            `json:"shippedAt,omitempty"`
	ShippedBy string                `json:"shippedBy,omitempty"`
	Notes     string                `json:"notes,omitempty"`
}

type ShipmentItemRequest struct {
	OrderLineID    int64 `json:"orderLineId"`
	ProductID      int64 `json:"productId"`
	QuantityToShip int64 `json:"quantityToShip"`
}

type CarrierRequest struct {
	Type           string `json:"carrierType"`
	Name           string `json:"carrierName,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
}

type AddressRequest struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// ValidateShipmentResponse mirrors the success payload of the legacy endpoint.
type ValidateShipmentResponse struct {
	Success        bool   `json:"success"`
	OrderNumber    string `json:"orderNumber"`
	NewStatus      string `json:"newStatus"`
	ShipmentID     string `json:"shipmentId"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	ItemsShipped   int    `json:"itemsShipped"`
}

// Order is the transport representation of a sales order.
type Order struct {
	ID             int64       `json:"id"`
	Number         string      `json:"number"`
	CustomerID     int64       `json:"customerId,omitempty"`
	Status         string      `json:"status"`
	ConfirmedAt    *time.Time  `json:"confirmedAt,omitempty"`
	FirstShippedAt *time.Time  `json:"firstShippedAt,omitempty"`
	ShippedBy      string      `json:"shippedBy,omitempty"`
	Lines          []OrderLine `json:"lines"`
}

type OrderLine struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"productId"`
	Ordered   int64 `json:"ordered"`
	Shipped   int64 `json:"shipped"`
}

// Shipment is the transport representation of one dispatch event.
type Shipment struct {
	ID             string    `json:"id"`
	OrderID        int64     `json:"orderId"`
	CarrierType    string    `json:"carrierType"`
	CarrierName    string    `json:"carrierName,omitempty"`
	TrackingNumber string    `json:"trackingNumber,omitempty"`
	ShippedAt      time.Time `json:"shippedAt"`
	ShippedBy      string    `json:"shippedBy,omitempty"`
	Notes          string    `json:"notes,omitempty"`
}

// RepairReport is the transport representation of a ledger repair pass.
type RepairReport struct {
	OrderID        int64   `json:"orderId"`
	OrderNumber    string  `json:"orderNumber"`
	LinesAdjusted  int     `json:"linesAdjusted"`
	UnitsRecovered int64   `json:"unitsRecovered"`
	ManualReview   []int64 `json:"manualReview,omitempty"`
	Status         string  `json:"status"`
}

// ToCreateOrderInput converts a transport request to the application input.
func ToCreateOrderInput(req CreateOrderRequest) types.CreateOrderInput {
	input := types.CreateOrderInput{Number: req.Number, CustomerID: req.CustomerID}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, types.OrderLineInput{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return input
}

// ToValidateShipmentInput converts a transport request to the application input.
func ToValidateShipmentInput(orderID int64, req ValidateShipmentRequest) types.ValidateShipmentInput {
	input := types.ValidateShipmentInput{
		OrderID: orderID,
		Carrier: types.CarrierInput{
			Type:           req.Carrier.Type,
			Name:           req.Carrier.Name,
			TrackingNumber: req.Carrier.TrackingNumber,
		},
		Address: types.AddressInput{
			Line1:      req.Address.Line1,
			Line2:      req.Address.Line2,
			City:       req.Address.City,
			Region:     req.Address.Region,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
		},
		ShippedAt: req.ShippedAt,
		ShippedBy: req.ShippedBy,
		Notes:     req.Notes,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, types.ShipmentItemInput{
			OrderLineID:    item.OrderLineID,
			ProductID:      item.ProductID,
			QuantityToShip: item.QuantityToShip,
		})
	}
	return input
}

// FromValidateShipmentResult converts the application result to transport form.
func FromValidateShipmentResult(result *types.ValidateShipmentResult) ValidateShipmentResponse {
	if result == nil {
		return ValidateShipmentResponse{}
	}
	return ValidateShipmentResponse{
		Success:        true,
		OrderNumber:    result.OrderNumber,
		NewStatus:      string(result.NewStatus),
		ShipmentID:     result.ShipmentID,
		TrackingNumber: result.TrackingNumber,
		ItemsShipped:   result.ItemsShipped,
	}
}

// FromDomainOrder converts a domain order to transport form.
func FromDomainOrder(order *fulfillmentdomain.SalesOrder) Order {
	if order == nil {
		return Order{}
	}
	out := Order{
		ID:             order.ID,
		Number:         order.Number,
		CustomerID:     order.CustomerID,
		Status:         string(order.Status),
		ConfirmedAt:    order.ConfirmedAt,
		FirstShippedAt: order.FirstShippedAt,
		ShippedBy:      order.ShippedBy,
		Lines:          make([]OrderLine, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		out.Lines = append(out.Lines, OrderLine{
			ID:        line.ID,
			ProductID: line.ProductID,
			Ordered:   line.Ordered,
			Shipped:   line.Shipped,
		})
	}
	return out
}

// FromDomainShipments converts shipment history to transport form.
func FromDomainShipments(shipments []*fulfillmentdomain.Shipment) []Shipment {
	out := make([]Shipment, 0, len(shipments))
	for _, shipment := range shipments {
		out = append(out, Shipment{
			ID:             shipment.ID,
			OrderID:        shipment.OrderID,
			CarrierType:    shipment.Carrier.Type,
			CarrierName:    shipment.Carrier.Name,
			TrackingNumber: shipment.Carrier.TrackingNumber,
			ShippedAt:      shipment.ShippedAt,
			ShippedBy:      shipment.ShippedBy,
			Notes:          shipment.Notes,
		})
	}
	return out
}

// FromRepairReport converts a repair report to transport form.
func FromRepairReport(report *types.RepairReport) RepairReport {
	if report == nil {
		return RepairReport{}
	}
	return RepairReport{
		OrderID:        report.OrderID,
		OrderNumber:    report.OrderNumber,
		LinesAdjusted:  report.LinesAdjusted,
		UnitsRecovered: report.UnitsRecovered,
		ManualReview:   report.ManualReview,
		Status:         string(report.Status),
	}
}
