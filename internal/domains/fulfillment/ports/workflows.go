package ports

import (
	"context"

	types "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/application/types"
)

// WorkflowOrchestrator exposes durable ledger repair to the fulfillment context.
type WorkflowOrchestrator interface {
	RepairOrderLedger(ctx context.Context, orderID int64) (*types.RepairReport, error)
}
