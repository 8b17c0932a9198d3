// Package backofficeserver wires the HTTP transport for the retail back-office API.
package backofficeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and path pattern to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the per-context API handlers.
type ApiHandleFunctions struct {
	FulfillmentAPI FulfillmentAPI
	CatalogAPI     CatalogAPI
	CustomersAPI   CustomersAPI
}

// NewRouter returns a gin engine with all routes registered.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine registers all routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func defaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"CreateOrder",
			http.MethodPost,
			"/v1/orders",
			handleFunctions.FulfillmentAPI.CreateOrder,
		},
		{
			"GetOrderById",
			http.MethodGet,
			"/v1/orders/:orderId",
			handleFunctions.FulfillmentAPI.GetOrderById,
		},
		{
			"ConfirmOrder",
			http.MethodPost,
			"/v1/orders/:orderId/confirm",
			handleFunctions.FulfillmentAPI.ConfirmOrder,
		},
		{
			"ValidateShipment",
			http.MethodPost,
			"/v1/orders/:orderId/shipments",
			handleFunctions.FulfillmentAPI.ValidateShipment,
		},
		{
			"ListShipments",
			http.MethodGet,
			"/v1/orders/:orderId/shipments",
			handleFunctions.FulfillmentAPI.ListShipments,
		},
		{
			"RepairOrderLedger",
			http.MethodPost,
			"/v1/orders/:orderId/ledger-repairs",
			handleFunctions.FulfillmentAPI.RepairOrderLedger,
		},
		{
			"CreateProduct",
			http.MethodPost,
			"/v1/products",
			handleFunctions.CatalogAPI.CreateProduct,
		},
		{
			"ListProducts",
			http.MethodGet,
			"/v1/products",
			handleFunctions.CatalogAPI.ListProducts,
		},
		{
			"GetProductById",
			http.MethodGet,
			"/v1/products/:productId",
			handleFunctions.CatalogAPI.GetProductById,
		},
		{
			"UpdateProduct",
			http.MethodPut,
			"/v1/products/:productId",
			handleFunctions.CatalogAPI.UpdateProduct,
		},
		{
			"AdjustProductStock",
			http.MethodPost,
			"/v1/products/:productId/stock-adjustments",
			handleFunctions.CatalogAPI.AdjustProductStock,
		},
		{
			"CreateCustomer",
			http.MethodPost,
			"/v1/customers",
			handleFunctions.CustomersAPI.CreateCustomer,
		},
		{
			"ListCustomers",
			http.MethodGet,
			"/v1/customers",
			handleFunctions.CustomersAPI.ListCustomers,
		},
		{
			"GetCustomerById",
			http.MethodGet,
			"/v1/customers/:customerId",
			handleFunctions.CustomersAPI.GetCustomerById,
		},
		{
			"UpdateCustomer",
			http.MethodPut,
			"/v1/customers/:customerId",
			handleFunctions.CustomersAPI.UpdateCustomer,
		},
		{
			"DeleteCustomer",
			http.MethodDelete,
			"/v1/customers/:customerId",
			handleFunctions.CustomersAPI.DeleteCustomer,
		},
	}
}
