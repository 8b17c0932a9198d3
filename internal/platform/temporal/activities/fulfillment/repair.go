package fulfillment

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	types "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/application/types"
	fulfillmentports "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/ports"
)

// RepairOrderLedgerActivityName reconciles an order's ledger against its shipments.
const RepairOrderLedgerActivityName = "fulfillment.activities.RepairOrderLedger"

// Activities groups activities that operate on the fulfillment bounded context.
type Activities struct {
	service fulfillmentports.Service
}

// NewActivities wires the fulfillment service into the Temporal activities bundle.
func NewActivities(service fulfillmentports.Service) *Activities {
	return &Activities{service: service}
}

// RepairOrderLedger runs one repair pass and returns its report.
func (a *Activities) RepairOrderLedger(ctx context.Context, orderID int64) (*types.RepairReport, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("ledger repair activity not initialized", "orderId", orderID)
		return nil, errors.New("ledger repair activity not initialized")
	}
	logger.Info("RepairOrderLedger activity started", "orderId", orderID)
	report, err := a.service.RepairOrderLedger(ctx, orderID)
	if err != nil {
		logger.Error("RepairOrderLedger activity failed", "orderId", orderID, "error", err)
		return nil, err
	}
	logger.Info("RepairOrderLedger activity completed",
		"orderId", orderID, "linesAdjusted", report.LinesAdjusted, "unitsRecovered", report.UnitsRecovered)
	return report, nil
}
