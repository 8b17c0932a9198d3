package domain

import (
	"errors"
	"strings"
	"time"
)

// Status enumerates the sales order lifecycle.
type Status string

const (
	StatusDraft            Status = "draft"
	StatusConfirmed        Status = "confirmed"
	StatusPartiallyShipped Status = "partially_shipped"
	StatusShipped          Status = "shipped"
	StatusDelivered        Status = "delivered"
	StatusCancelled        Status = "cancelled"
	StatusClosed           Status = "closed"
)

var (
	ErrEmptyOrderNumber = errors.New("order number is required")
	ErrEmptyLines       = errors.New("order must have at least one line")
	ErrInvalidOrdered   = errors.New("ordered quantity must be greater than zero")
	ErrInvalidStatus    = errors.New("order status is invalid")
	ErrNotConfirmable   = errors.New("only draft orders can be confirmed")
	ErrOverShipment     = errors.New("shipped quantity would exceed ordered quantity")
)

// SalesOrder models the sales order aggregate, lines included.
type SalesOrder struct {
	ID             int64
	Number         string
	CustomerID     int64
	Status         Status
	ConfirmedAt    *time.Time
	FirstShippedAt *time.Time
	ShippedBy      string
	Lines          []OrderLine
}

// OrderLine carries one product entry of a sales order. Ordered is immutable
// after confirmation; Shipped only ever grows, within 0 <= Shipped <= Ordered.
type OrderLine struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Ordered   int64
	Shipped   int64
}

// Remaining is the quantity still to be shipped on this line.
func (l OrderLine) Remaining() int64 {
	return l.Ordered - l.Shipped
}

// NewSalesOrder validates and constructs a draft order.
func NewSalesOrder(number string, customerID int64, lines []OrderLine) (*SalesOrder, error) {
	order := &SalesOrder{
		Number:     strings.TrimSpace(number),
		CustomerID: customerID,
		Status:     StatusDraft,
		Lines:      lines,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *SalesOrder) Validate() error {
	if o.Number == "" {
		return ErrEmptyOrderNumber
	}
	if len(o.Lines) == 0 {
		return ErrEmptyLines
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	for _, line := range o.Lines {
		if line.Ordered <= 0 {
			return ErrInvalidOrdered
		}
		if line.Shipped < 0 || line.Shipped > line.Ordered {
			return ErrOverShipment
		}
	}
	return nil
}

// Confirm moves a draft order into the shippable part of the lifecycle.
func (o *SalesOrder) Confirm(at time.Time) error {
	if o.Status != StatusDraft {
		return ErrNotConfirmable
	}
	if err := o.Validate(); err != nil {
		return err
	}
	o.Status = StatusConfirmed
	o.ConfirmedAt = &at
	return nil
}

// Shippable reports whether new shipments may be recorded against the order.
func (o *SalesOrder) Shippable() bool {
	return o.Status == StatusConfirmed || o.Status == StatusPartiallyShipped
}

// LineByID finds a line of this order.
func (o *SalesOrder) LineByID(lineID int64) (OrderLine, bool) {
	for _, line := range o.Lines {
		if line.ID == lineID {
			return line, true
		}
	}
	return OrderLine{}, false
}

// NextStatus derives the lifecycle status from the full line set. It is
// evaluated fresh every time, never incrementally, so re-running it on an
// unchanged line set always yields the same answer. Terminal and foreign
// states (delivered, cancelled, closed, draft) are returned unchanged;
// shipment reconciliation must never overwrite them.
func NextStatus(current Status, lines []OrderLine) Status {
	switch current {
	case StatusConfirmed, StatusPartiallyShipped, StatusShipped:
	default:
		return current
	}
	if len(lines) == 0 {
		return current
	}
	fullyShipped := true
	anyShipped := false
	for _, line := range lines {
		if line.Shipped < line.Ordered {
			fullyShipped = false
		}
		if line.Shipped > 0 {
			anyShipped = true
		}
	}
	if fullyShipped {
		return StatusShipped
	}
	if anyShipped {
		return StatusPartiallyShipped
	}
	return current
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusDraft, StatusConfirmed, StatusPartiallyShipped, StatusShipped,
		StatusDelivered, StatusCancelled, StatusClosed:
		return true
	default:
		return false
	}
}
