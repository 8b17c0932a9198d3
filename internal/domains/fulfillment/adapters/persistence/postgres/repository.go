package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/domain"
	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/ports"
)

var (
	_ ports.OrderRepository    = (*Repository)(nil)
	_ ports.ShipmentRepository = (*Repository)(nil)
)

// Repository persists sales orders and shipments in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&salesOrderRecord{}, &orderLineRecord{}, &shipmentRecord{}, &shipmentLineRecord{})
	}
	return repo
}

type salesOrderRecord struct {
	ID             int64      `gorm:"primaryKey;column:id"`
	Number         string     `gorm:"column:number;type:varchar(64);uniqueIndex"`
	CustomerID     int64      `gorm:"column:customer_id;index"`
	Status         string     `gorm:"column:status;type:varchar(32);index"`
	ConfirmedAt    *time.Time `gorm:"column:confirmed_at"`
	FirstShippedAt *time.Time `gorm:"column:first_shipped_at"`
	ShippedBy      string     `gorm:"column:shipped_by"`
	CreatedAt      time.Time  `gorm:"column:created_at;index"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (salesOrderRecord) TableName() string { return "sales_orders" }

type orderLineRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	OrderID   int64     `gorm:"column:order_id;index:idx_order_lines_order"`
	ProductID int64     `gorm:"column:product_id;index"`
	Ordered   int64     `gorm:"column:ordered"`
	Shipped   int64     `gorm:"column:shipped"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (orderLineRecord) TableName() string { return "order_lines" }

type shipmentRecord struct {
	ID             string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	OrderID        int64     `gorm:"column:order_id;index:idx_shipments_order"`
	CarrierType    string    `gorm:"column:carrier_type;type:varchar(64)"`
	CarrierName    string    `gorm:"column:carrier_name"`
	TrackingNumber string    `gorm:"column:tracking_number"`
	AddressLine1   string    `gorm:"column:address_line1"`
	AddressLine2   string    `gorm:"column:address_line2"`
	City           string    `gorm:"column:city"`
	Region         string    `gorm:"column:region"`
	PostalCode     string    `gorm:"column:postal_code;type:varchar(32)"`
	Country        string    `gorm:"column:country;type:varchar(32)"`
	Notes          string    `gorm:"column:notes"`
	ShippedAt      time.Time `gorm:"column:shipped_at;index"`
	ShippedBy      string    `gorm:"column:shipped_by"`
	CreatedAt      time.Time `gorm:"column:created_at;index"`
}

func (shipmentRecord) TableName() string { return "shipments" }

type shipmentLineRecord struct {
	ID          int64  `gorm:"primaryKey;column:id"`
	ShipmentID  string `gorm:"column:shipment_id;type:varchar(64);index:idx_shipment_lines_shipment"`
	OrderLineID int64  `gorm:"column:order_line_id;index"`
	ProductID   int64  `gorm:"column:product_id"`
	Quantity    int64  `gorm:"column:quantity"`
}

func (shipmentLineRecord) TableName() string { return "shipment_lines" }

// Save inserts or updates an order with its lines.
func (r *Repository) Save(ctx context.Context, order *domain.SalesOrder) (*domain.SalesOrder, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toOrderRecord(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		for i := range order.Lines {
			line := toLineRecord(order.Lines[i])
			line.OrderID = record.ID
			if err := tx.Save(&line).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order and its lines.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SalesOrder, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record salesOrderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var lines []orderLineRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&lines, "order_id = ?", id).Error; err != nil {
		return nil, err
	}
	return toDomainOrder(record, lines), nil
}

// RecordLineShipment applies the shipped delta as one conditional update. The
// predicate carries the bound check, so two concurrent passes on the same line
// cannot jointly over-ship: whichever loses the race affects zero rows.
func (r *Repository) RecordLineShipment(ctx context.Context, lineID int64, delta int64) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).Model(&orderLineRecord{}).
		Where("id = ? AND shipped + ? <= ordered", lineID, delta).
		UpdateColumn("shipped", gorm.Expr("shipped + ?", delta))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		var line orderLineRecord
		if err := r.db.WithContext(ctx).First(&line, "id = ?", lineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ports.ErrLineNotFound
			}
			return 0, err
		}
		return 0, domain.ErrOverShipment
	}
	var line orderLineRecord
	if err := r.db.WithContext(ctx).First(&line, "id = ?", lineID).Error; err != nil {
		return 0, err
	}
	return line.Shipped, nil
}

// UpdateStatus writes the derived lifecycle status.
func (r *Repository) UpdateStatus(ctx context.Context, orderID int64, status domain.Status) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&salesOrderRecord{}).
		Where("id = ?", orderID).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// StampFirstShipment sets the first-shipped timestamp and actor, only once.
func (r *Repository) StampFirstShipment(ctx context.Context, orderID int64, shippedAt time.Time, shippedBy string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&salesOrderRecord{}).
		Where("id = ? AND first_shipped_at IS NULL", orderID).
		Updates(map[string]any{"first_shipped_at": shippedAt, "shipped_by": shippedBy}).Error
}

// Create persists the shipment header and its lines in one transaction.
func (r *Repository) Create(ctx context.Context, shipment *domain.Shipment, lines []domain.ShipmentLine) (*domain.Shipment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, errors.New("shipment is nil")
	}
	record := toShipmentRecord(shipment)
	lineRecords := make([]shipmentLineRecord, 0, len(lines))
	for _, line := range lines {
		lineRecords = append(lineRecords, shipmentLineRecord{
			ShipmentID:  record.ID,
			OrderLineID: line.OrderLineID,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
		})
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Create(&lineRecords).Error
	})
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// ListByOrder returns the order's shipment history, oldest first.
func (r *Repository) ListByOrder(ctx context.Context, orderID int64) ([]*domain.Shipment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []shipmentRecord
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&records, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	shipments := make([]*domain.Shipment, 0, len(records))
	for i := range records {
		shipments = append(shipments, records[i].toDomain())
	}
	return shipments, nil
}

// LinesByOrder returns every shipment line recorded against the order.
func (r *Repository) LinesByOrder(ctx context.Context, orderID int64) ([]domain.ShipmentLine, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []shipmentLineRecord
	err := r.db.WithContext(ctx).
		Joins("JOIN shipments ON shipments.id = shipment_lines.shipment_id").
		Where("shipments.order_id = ?", orderID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	lines := make([]domain.ShipmentLine, 0, len(records))
	for _, record := range records {
		lines = append(lines, domain.ShipmentLine{
			ID:          record.ID,
			ShipmentID:  record.ShipmentID,
			OrderLineID: record.OrderLineID,
			ProductID:   record.ProductID,
			Quantity:    record.Quantity,
		})
	}
	return lines, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres fulfillment repository not configured")
	}
	return nil
}

func toOrderRecord(order *domain.SalesOrder) salesOrderRecord {
	return salesOrderRecord{
		ID:             order.ID,
		Number:         order.Number,
		CustomerID:     order.CustomerID,
		Status:         string(order.Status),
		ConfirmedAt:    order.ConfirmedAt,
		FirstShippedAt: order.FirstShippedAt,
		ShippedBy:      order.ShippedBy,
	}
}

func toLineRecord(line domain.OrderLine) orderLineRecord {
	return orderLineRecord{
		ID:        line.ID,
		OrderID:   line.OrderID,
		ProductID: line.ProductID,
		Ordered:   line.Ordered,
		Shipped:   line.Shipped,
	}
}

func toDomainOrder(record salesOrderRecord, lines []orderLineRecord) *domain.SalesOrder {
	order := &domain.SalesOrder{
		ID:             record.ID,
		Number:         record.Number,
		CustomerID:     record.CustomerID,
		Status:         domain.Status(record.Status),
		ConfirmedAt:    record.ConfirmedAt,
		FirstShippedAt: record.FirstShippedAt,
		ShippedBy:      record.ShippedBy,
		Lines:          make([]domain.OrderLine, 0, len(lines)),
	}
	for _, line := range lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ID:        line.ID,
			OrderID:   line.OrderID,
			ProductID: line.ProductID,
			Ordered:   line.Ordered,
			Shipped:   line.Shipped,
		})
	}
	return order
}

func toShipmentRecord(shipment *domain.Shipment) shipmentRecord {
	return shipmentRecord{
		ID:             shipment.ID,
		OrderID:        shipment.OrderID,
		CarrierType:    shipment.Carrier.Type,
		CarrierName:    shipment.Carrier.Name,
		TrackingNumber: shipment.Carrier.TrackingNumber,
		AddressLine1:   shipment.Address.Line1,
		AddressLine2:   shipment.Address.Line2,
		City:           shipment.Address.City,
		Region:         shipment.Address.Region,
		PostalCode:     shipment.Address.PostalCode,
		Country:        shipment.Address.Country,
		Notes:          shipment.Notes,
		ShippedAt:      shipment.ShippedAt,
		ShippedBy:      shipment.ShippedBy,
	}
}

func (r shipmentRecord) toDomain() *domain.Shipment {
	return &domain.Shipment{
		ID:      r.ID,
		OrderID: r.OrderID,
		Carrier: domain.CarrierInfo{
			Type:           r.CarrierType,
			Name:           r.CarrierName,
			TrackingNumber: r.TrackingNumber,
		},
		Address: domain.Address{
			Line1:      r.AddressLine1,
			Line2:      r.AddressLine2,
			City:       r.City,
			Region:     r.Region,
			PostalCode: r.PostalCode,
			Country:    r.Country,
		},
		Notes:     r.Notes,
		ShippedAt: r.ShippedAt,
		ShippedBy: r.ShippedBy,
		CreatedAt: r.CreatedAt,
	}
}
