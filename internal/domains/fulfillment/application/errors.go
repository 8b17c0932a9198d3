package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/domain"
)

var (
	// ErrInvalidRequest signals a malformed or incomplete shipment request,
	// rejected before any read or write.
	ErrInvalidRequest = errors.New("invalid shipment request")
	// ErrInvalidState signals the order is not in a shippable lifecycle state.
	ErrInvalidState = errors.New("order is not in a shippable state")
	// ErrInconsistentQuantity signals an over-shipment detected after the
	// shipment row was already persisted. The shipment exists but the order's
	// ledger and status were left untouched; the mismatch is surfaced for the
	// repair pass rather than silently applied.
	ErrInconsistentQuantity = errors.New("shipment recorded but line totals are inconsistent")
	// ErrPersistence wraps store write failures opaque to this service.
	ErrPersistence = errors.New("persistence failure")
)

// InsufficientStockError names the offending product and the shortfall.
type InsufficientStockError struct {
	ProductID int64
	Requested int64
	OnHand    int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, on hand %d (short %d)",
		e.ProductID, e.Requested, e.OnHand, e.Shortfall())
}

// Shortfall is the quantity missing to satisfy the request.
func (e *InsufficientStockError) Shortfall() int64 {
	return e.Requested - e.OnHand
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyOrderNumber) ||
		errors.Is(err, domain.ErrEmptyLines) ||
		errors.Is(err, domain.ErrInvalidOrdered) ||
		errors.Is(err, domain.ErrMissingCarrier) ||
		errors.Is(err, domain.ErrMissingAddress) ||
		errors.Is(err, domain.ErrEmptyShipmentLines) ||
		errors.Is(err, domain.ErrInvalidShipmentQty) {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return err
}
