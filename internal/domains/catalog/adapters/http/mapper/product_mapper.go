package mapper

import (
	catalogdomain "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/domain"
)

// Product is the transport-layer shape used by the handlers.
type Product struct {
	ID          int64    `json:"id"`
	SKU         string   `json:"sku"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
	OnHand      int64    `json:"onHand"`
	Active      bool     `json:"active"`
}

// StockAdjustmentRequest applies a signed delta to a product's on-hand count.
type StockAdjustmentRequest struct {
	Delta  int64  `json:"delta"`
	Reason string `json:"reason,omitempty"`
}

// StockAdjustmentResponse reports the counter after the adjustment.
type StockAdjustmentResponse struct {
	ProductID int64 `json:"productId"`
	OnHand    int64 `json:"onHand"`
}

// ToDomainProduct converts a transport product into the catalog domain model.
func ToDomainProduct(product Product) *catalogdomain.Product {
	return &catalogdomain.Product{
		ID:          product.ID,
		SKU:         product.SKU,
		Name:        product.Name,
		Description: product.Description,
		ImageURLs:   product.ImageURLs,
		OnHand:      product.OnHand,
		Active:      product.Active,
	}
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:          product.ID,
		SKU:         product.SKU,
		Name:        product.Name,
		Description: product.Description,
		ImageURLs:   product.ImageURLs,
		OnHand:      product.OnHand,
		Active:      product.Active,
	}
}

// FromDomainProductList converts a product list to transport form.
func FromDomainProductList(products []*catalogdomain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, product := range products {
		out = append(out, FromDomainProduct(product))
	}
	return out
}
