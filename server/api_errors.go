package backofficeserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/ports"
	customersapp "github.com/Apurer/go-retail-backoffice/internal/domains/customers/application"
	customersports "github.com/Apurer/go-retail-backoffice/internal/domains/customers/ports"
	fulfillmentapp "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/application"
	fulfillmentdomain "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/domain"
	fulfillmentports "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/ports"
	apierrors "github.com/Apurer/go-retail-backoffice/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError converts a plain status/error pair into an RFC 7807 response.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusConflict:
		problem = apierrors.ErrConflict.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}

// respondFulfillmentServiceError translates the fulfillment error taxonomy
// into Problem Details. The failure kinds the pipeline distinguishes map to
// distinct problem types so clients can branch without parsing messages.
func respondFulfillmentServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var stockErr *fulfillmentapp.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		respondProblem(c, apierrors.NewInsufficientStockProblem(stockErr.ProductID, stockErr.Requested, stockErr.OnHand))
	case errors.Is(err, fulfillmentapp.ErrInvalidRequest):
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
	case errors.Is(err, fulfillmentports.ErrNotFound),
		errors.Is(err, fulfillmentports.ErrLineNotFound),
		errors.Is(err, fulfillmentports.ErrProductNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, fulfillmentapp.ErrInvalidState),
		errors.Is(err, fulfillmentdomain.ErrNotConfirmable),
		errors.Is(err, fulfillmentdomain.ErrInvalidStatus):
		respondProblem(c, apierrors.ErrInvalidState.WithDetail(err.Error()))
	case errors.Is(err, fulfillmentapp.ErrInconsistentQuantity),
		errors.Is(err, fulfillmentdomain.ErrOverShipment):
		respondProblem(c, apierrors.ErrOverShipment.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

func respondCatalogServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, catalogapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

func respondCustomersServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, customersports.ErrNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, customersapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}
