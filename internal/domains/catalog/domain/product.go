package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptySKU      = errors.New("sku is required")
	ErrEmptyName     = errors.New("product name is required")
	ErrNegativeStock = errors.New("on-hand stock cannot go negative")
	ErrInvalidOnHand = errors.New("on-hand stock must not be negative")
)

// Product models a catalogue entry together with its on-hand stock counter.
type Product struct {
	ID          int64
	SKU         string
	Name        string
	Description string
	ImageURLs   []string
	OnHand      int64
	Active      bool
}

// NewProduct validates and constructs a product.
func NewProduct(sku, name string, onHand int64) (*Product, error) {
	product := &Product{
		SKU:    strings.TrimSpace(sku),
		Name:   strings.TrimSpace(name),
		OnHand: onHand,
		Active: true,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the product.
func (p *Product) Validate() error {
	if p.SKU == "" {
		return ErrEmptySKU
	}
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.OnHand < 0 {
		return ErrInvalidOnHand
	}
	return nil
}

// AdjustStock applies a signed delta to the on-hand counter. The counter
// never goes below zero.
func (p *Product) AdjustStock(delta int64) error {
	if p.OnHand+delta < 0 {
		return ErrNegativeStock
	}
	p.OnHand += delta
	return nil
}
