package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	types "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/application/types"
	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/domain"
)

// RepairOrderLedger re-derives an order's per-line shipped totals from its
// shipment history and applies any missing deltas. It compensates for the
// window where a shipment row was persisted but the ledger or status write
// behind it failed: the shipment is the source of truth, the ledger catches
// up. Safe to re-run; a pass over a consistent order changes nothing.
func (s *Service) RepairOrderLedger(ctx context.Context, orderID int64) (*types.RepairReport, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	shipped, err := s.shipments.LinesByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	totals := make(map[int64]int64, len(order.Lines))
	for _, line := range shipped {
		totals[line.OrderLineID] += line.Quantity
	}

	report := &types.RepairReport{OrderID: order.ID, OrderNumber: order.Number, Status: order.Status}
	for _, line := range order.Lines {
		delta := totals[line.ID] - line.Shipped
		if delta <= 0 {
			// A ledger ahead of its shipments would mean a lost shipment row;
			// quantities are never decremented here, so flag it instead.
			if delta < 0 {
				report.ManualReview = append(report.ManualReview, line.ID)
			}
			continue
		}
		if _, err := s.orders.RecordLineShipment(ctx, line.ID, delta); err != nil {
			if errors.Is(err, domain.ErrOverShipment) {
				report.ManualReview = append(report.ManualReview, line.ID)
				continue
			}
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		report.LinesAdjusted++
		report.UnitsRecovered += delta
	}

	updated, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	next := domain.NextStatus(updated.Status, updated.Lines)
	if next != updated.Status {
		if err := s.orders.UpdateStatus(ctx, orderID, next); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}
	report.Status = next

	if updated.FirstShippedAt == nil && anyShipped(updated.Lines) {
		if at, by, ok := earliestShipment(ctx, s, orderID); ok {
			if err := s.orders.StampFirstShipment(ctx, orderID, at, by); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
			}
		}
	}
	return report, nil
}

func anyShipped(lines []domain.OrderLine) bool {
	for _, line := range lines {
		if line.Shipped > 0 {
			return true
		}
	}
	return false
}

func earliestShipment(ctx context.Context, s *Service, orderID int64) (at time.Time, by string, ok bool) {
	history, err := s.shipments.ListByOrder(ctx, orderID)
	if err != nil || len(history) == 0 {
		return at, "", false
	}
	first := history[0]
	for _, shipment := range history[1:] {
		if shipment.ShippedAt.Before(first.ShippedAt) {
			first = shipment
		}
	}
	return first.ShippedAt, first.ShippedBy, true
}
