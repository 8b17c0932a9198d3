package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/domain"
	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/ports"
)

var (
	_ ports.OrderRepository    = (*Repository)(nil)
	_ ports.ShipmentRepository = (*Repository)(nil)
)

// Repository is an in-memory fulfillment persistence adapter. Orders and
// shipments share one lock so the ledger bound check and write stay atomic
// with respect to concurrent reconciliation passes.
type Repository struct {
	mu            sync.RWMutex
	orders        map[int64]*domain.SalesOrder
	shipments     map[string]*domain.Shipment
	shipmentLines map[string][]domain.ShipmentLine
	nextOrderID   int64
	nextLineID    int64
}

func NewRepository() *Repository {
	return &Repository{
		orders:        map[int64]*domain.SalesOrder{},
		shipments:     map[string]*domain.Shipment{},
		shipmentLines: map[string][]domain.ShipmentLine{},
	}
}

func (r *Repository) Save(_ context.Context, order *domain.SalesOrder) (*domain.SalesOrder, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	clone := cloneOrder(order)
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextOrderID++
		clone.ID = r.nextOrderID
	} else if clone.ID > r.nextOrderID {
		r.nextOrderID = clone.ID
	}
	for i := range clone.Lines {
		if clone.Lines[i].ID == 0 {
			r.nextLineID++
			clone.Lines[i].ID = r.nextLineID
		} else if clone.Lines[i].ID > r.nextLineID {
			r.nextLineID = clone.Lines[i].ID
		}
		clone.Lines[i].OrderID = clone.ID
	}
	r.orders[clone.ID] = clone
	return cloneOrder(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.SalesOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

// RecordLineShipment performs the bound check and the write under one lock;
// two concurrent passes on the same line cannot both slip past the check.
func (r *Repository) RecordLineShipment(_ context.Context, lineID int64, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		for i := range order.Lines {
			line := &order.Lines[i]
			if line.ID != lineID {
				continue
			}
			if line.Shipped+delta > line.Ordered {
				return 0, domain.ErrOverShipment
			}
			line.Shipped += delta
			return line.Shipped, nil
		}
	}
	return 0, ports.ErrLineNotFound
}

func (r *Repository) UpdateStatus(_ context.Context, orderID int64, status domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return ports.ErrNotFound
	}
	order.Status = status
	return nil
}

func (r *Repository) StampFirstShipment(_ context.Context, orderID int64, shippedAt time.Time, shippedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return ports.ErrNotFound
	}
	if order.FirstShippedAt != nil {
		return nil
	}
	at := shippedAt
	order.FirstShippedAt = &at
	order.ShippedBy = shippedBy
	return nil
}

func (r *Repository) Create(_ context.Context, shipment *domain.Shipment, lines []domain.ShipmentLine) (*domain.Shipment, error) {
	if shipment == nil {
		return nil, errors.New("shipment is nil")
	}
	clone := *shipment
	clone.CreatedAt = time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[clone.OrderID]; !ok {
		return nil, ports.ErrNotFound
	}
	stored := make([]domain.ShipmentLine, len(lines))
	copy(stored, lines)
	for i := range stored {
		r.nextLineID++
		stored[i].ID = r.nextLineID
		stored[i].ShipmentID = clone.ID
	}
	r.shipments[clone.ID] = &clone
	r.shipmentLines[clone.ID] = stored
	out := clone
	return &out, nil
}

func (r *Repository) ListByOrder(_ context.Context, orderID int64) ([]*domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Shipment, 0)
	for _, shipment := range r.shipments {
		if shipment.OrderID != orderID {
			continue
		}
		clone := *shipment
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *Repository) LinesByOrder(_ context.Context, orderID int64) ([]domain.ShipmentLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ShipmentLine, 0)
	for id, shipment := range r.shipments {
		if shipment.OrderID != orderID {
			continue
		}
		out = append(out, r.shipmentLines[id]...)
	}
	return out, nil
}

func cloneOrder(order *domain.SalesOrder) *domain.SalesOrder {
	clone := *order
	if order.ConfirmedAt != nil {
		at := *order.ConfirmedAt
		clone.ConfirmedAt = &at
	}
	if order.FirstShippedAt != nil {
		at := *order.FirstShippedAt
		clone.FirstShippedAt = &at
	}
	clone.Lines = make([]domain.OrderLine, len(order.Lines))
	copy(clone.Lines, order.Lines)
	return &clone
}
