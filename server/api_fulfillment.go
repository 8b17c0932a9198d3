package backofficeserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	fulfillmenthttpmapper "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/http/mapper"
	types "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/application/types"
	fulfillmentports "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/ports"
)

// FulfillmentAPI wires HTTP transport with the fulfillment bounded context.
type FulfillmentAPI struct {
	service   fulfillmentports.Service
	workflows fulfillmentports.WorkflowOrchestrator
}

// NewFulfillmentAPI creates a FulfillmentAPI backed by the provided service.
func NewFulfillmentAPI(service fulfillmentports.Service, workflows fulfillmentports.WorkflowOrchestrator) FulfillmentAPI {
	return FulfillmentAPI{service: service, workflows: workflows}
}

// Post /v1/orders
// Draft a new sales order
func (api *FulfillmentAPI) CreateOrder(c *gin.Context) {
	var payload fulfillmenthttpmapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := api.service.CreateOrder(c.Request.Context(), fulfillmenthttpmapper.ToCreateOrderInput(payload))
	if err != nil {
		respondFulfillmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fulfillmenthttpmapper.FromDomainOrder(order))
}

// Get /v1/orders/:orderId
// Fetch an order with its line ledger
func (api *FulfillmentAPI) GetOrderById(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		respondFulfillmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fulfillmenthttpmapper.FromDomainOrder(order))
}

// Post /v1/orders/:orderId/confirm
// Move a draft order into the shippable lifecycle
func (api *FulfillmentAPI) ConfirmOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.ConfirmOrder(c.Request.Context(), id)
	if err != nil {
		respondFulfillmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fulfillmenthttpmapper.FromDomainOrder(order))
}

// Post /v1/orders/:orderId/shipments
// Validate and record one shipment against the order
func (api *FulfillmentAPI) ValidateShipment(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload fulfillmenthttpmapper.ValidateShipmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	result, err := api.service.ValidateShipment(c.Request.Context(), fulfillmenthttpmapper.ToValidateShipmentInput(id, payload))
	if err != nil {
		respondFulfillmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fulfillmenthttpmapper.FromValidateShipmentResult(result))
}

// Get /v1/orders/:orderId/shipments
// List the immutable shipment history of an order
func (api *FulfillmentAPI) ListShipments(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	shipments, err := api.service.ListShipments(c.Request.Context(), id)
	if err != nil {
		respondFulfillmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fulfillmenthttpmapper.FromDomainShipments(shipments))
}

// Post /v1/orders/:orderId/ledger-repairs
// Reconcile the order's line ledger against its shipment history
func (api *FulfillmentAPI) RepairOrderLedger(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	report, err := api.repairLedger(c.Request.Context(), id)
	if err != nil {
		respondFulfillmentServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fulfillmenthttpmapper.FromRepairReport(report))
}

func (api *FulfillmentAPI) repairLedger(ctx context.Context, orderID int64) (*types.RepairReport, error) {
	if api.workflows != nil {
		return api.workflows.RepairOrderLedger(ctx, orderID)
	}
	return api.service.RepairOrderLedger(ctx, orderID)
}
