package backofficeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customershttpmapper "github.com/Apurer/go-retail-backoffice/internal/domains/customers/adapters/http/mapper"
	customersports "github.com/Apurer/go-retail-backoffice/internal/domains/customers/ports"
)

// CustomersAPI wires HTTP transport with the customers bounded context.
type CustomersAPI struct {
	service customersports.Service
}

// NewCustomersAPI creates a CustomersAPI backed by the provided service.
func NewCustomersAPI(service customersports.Service) CustomersAPI {
	return CustomersAPI{service: service}
}

// Post /v1/customers
// Register a customer
func (api *CustomersAPI) CreateCustomer(c *gin.Context) {
	var payload customershttpmapper.Customer
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.CreateCustomer(c.Request.Context(), customershttpmapper.ToDomainCustomer(payload))
	if err != nil {
		respondCustomersServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customershttpmapper.FromDomainCustomer(saved))
}

// Get /v1/customers
// List customers
func (api *CustomersAPI) ListCustomers(c *gin.Context) {
	customers, err := api.service.ListCustomers(c.Request.Context())
	if err != nil {
		respondCustomersServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customershttpmapper.FromDomainCustomerList(customers))
}

// Get /v1/customers/:customerId
// Fetch a customer
func (api *CustomersAPI) GetCustomerById(c *gin.Context) {
	id, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}
	customer, err := api.service.GetCustomerByID(c.Request.Context(), id)
	if err != nil {
		respondCustomersServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customershttpmapper.FromDomainCustomer(customer))
}

// Put /v1/customers/:customerId
// Update a customer record
func (api *CustomersAPI) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}
	var payload customershttpmapper.Customer
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	payload.ID = id
	updated, err := api.service.UpdateCustomer(c.Request.Context(), customershttpmapper.ToDomainCustomer(payload))
	if err != nil {
		respondCustomersServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customershttpmapper.FromDomainCustomer(updated))
}

// Delete /v1/customers/:customerId
// Deactivate a customer record
func (api *CustomersAPI) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}
	if err := api.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		respondCustomersServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
