package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-retail-backoffice/internal/domains/customers/domain"
	"github.com/Apurer/go-retail-backoffice/internal/domains/customers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists customers in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&customerRecord{})
	}
	return repo
}

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

// Save inserts or updates a customer.
func (r *Repository) Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	record := toRecord(customer)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":          record.Name,
				"organisation":  record.Organisation,
				"email":         record.Email,
				"phone":         record.Phone,
				"billing_line1": record.BillingLine1,
				"billing_city":  record.BillingCity,
				"billing_zip":   record.BillingZip,
				"country":       record.Country,
				"active":        record.Active,
				"updated_at":    gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a customer by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record customerRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all customers.
func (r *Repository) List(ctx context.Context) ([]*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []customerRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	customers := make([]*domain.Customer, 0, len(records))
	for i := range records {
		customers = append(customers, records[i].toDomain())
	}
	return customers, nil
}

// Delete removes a customer record.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&customerRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres customer repository not configured")
	}
	return nil
}

func toRecord(customer *domain.Customer) customerRecord {
	return customerRecord{
		ID:           customer.ID,
		Name:         customer.Name,
		Organisation: customer.Organisation,
		Email:        customer.Email,
		Phone:        customer.Phone,
		BillingLine1: customer.BillingLine1,
		BillingCity:  customer.BillingCity,
		BillingZip:   customer.BillingZip,
		Country:      customer.Country,
		Active:       customer.Active,
	}
}

func (r customerRecord) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:           r.ID,
		Name:         r.Name,
		Organisation: r.Organisation,
		Email:        r.Email,
		Phone:        r.Phone,
		BillingLine1: r.BillingLine1,
		BillingCity:  r.BillingCity,
		BillingZip:   r.BillingZip,
		Country:      r.Country,
		Active:       r.Active,
	}
}
