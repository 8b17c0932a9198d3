package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&customerRecord{},
		&salesOrderRecord{},
		&orderLineRecord{},
		&shipmentRecord{},
		&shipmentLineRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID          int64          `gorm:"primaryKey;column:id"`
	SKU         string         `gorm:"column:sku;type:varchar(64);uniqueIndex"`
	Name        string         `gorm:"column:name"`
	Description string         `gorm:"column:description"`
	ImageURLs   pq.StringArray `gorm:"column:image_urls;type:text[]"`
	OnHand      int64          `gorm:"column:on_hand"`
	Active      bool           `gorm:"column:active;index"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Customer schema mirrors the customers Postgres adapter.
type customerRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	Name         string    `gorm:"column:name;index"`
	Organisation string    `gorm:"column:organisation"`
	Email        string    `gorm:"column:email"`
	Phone        string    `gorm:"column:phone"`
	BillingLine1 string    `gorm:"column:billing_line1"`
	BillingCity  string    `gorm:"column:billing_city"`
	BillingZip   string    `gorm:"column:billing_zip;type:varchar(32)"`
	Country      string    `gorm:"column:country;type:varchar(32)"`
	Active       bool      `gorm:"column:active;index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

// Sales order schema mirrors the fulfillment Postgres adapter.
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
