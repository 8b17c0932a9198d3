package backofficeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/ports"
)

// CatalogAPI wires HTTP transport with the catalogue bounded context.
type CatalogAPI struct {
	service catalogports.Service
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Post /v1/products
// Register a product
func (api *CatalogAPI) CreateProduct(c *gin.Context) {
	var payload cataloghttpmapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.CreateProduct(c.Request.Context(), cataloghttpmapper.ToDomainProduct(payload))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromDomainProduct(saved))
}

// Get /v1/products
// List products
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	// Lookup by SKU piggybacks on the list route; a miss is a 404 like the ID route.
	if sku := c.Query("sku"); sku != "" {
		product, err := api.service.GetProductBySKU(c.Request.Context(), sku)
		if err != nil {
			respondCatalogServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, []cataloghttpmapper.Product{cataloghttpmapper.FromDomainProduct(product)})
		return
	}
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProductList(products))
}

// Put /v1/products/:productId
// Replace a product's descriptive fields; stock moves only via adjustments
func (api *CatalogAPI) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload cataloghttpmapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	payload.ID = id
	updated, err := api.service.UpdateProduct(c.Request.Context(), cataloghttpmapper.ToDomainProduct(payload))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(updated))
}

// Get /v1/products/:productId
// Fetch a product
func (api *CatalogAPI) GetProductById(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetProductByID(c.Request.Context(), id)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

// Post /v1/products/:productId/stock-adjustments
// Apply a signed delta to the on-hand counter
func (api *CatalogAPI) AdjustProductStock(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload cataloghttpmapper.StockAdjustmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	onHand, err := api.service.AdjustStock(c.Request.Context(), id, payload.Delta)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.StockAdjustmentResponse{ProductID: id, OnHand: onHand})
}
