package fulfillment

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	types "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/application/types"
	repairactivities "github.com/Apurer/go-retail-backoffice/internal/platform/temporal/activities/fulfillment"
)

const (
	// LedgerRepairWorkflowName is the public identifier for registering the workflow.
	LedgerRepairWorkflowName = "fulfillment.workflows.LedgerRepair"
	// LedgerRepairTaskQueue is the queue consumed by the worker processing repair workflows.
	LedgerRepairTaskQueue = "LEDGER_REPAIR"
)

// LedgerRepairWorkflowInput identifies the order whose ledger should be
// reconciled against its shipment history.
type LedgerRepairWorkflowInput struct {
	OrderID int64
	TraceID string
}

// LedgerRepairWorkflow durably executes one repair pass. The pass itself is
// idempotent, so retries after worker or activity failure are safe.
func LedgerRepairWorkflow(ctx workflow.Context, input LedgerRepairWorkflowInput) (*types.RepairReport, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("LedgerRepairWorkflow started", withTraceID(input.TraceID, "orderId", input.OrderID)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var report types.RepairReport
	err := workflow.ExecuteActivity(ctx, repairactivities.RepairOrderLedgerActivityName, input.OrderID).Get(ctx, &report)
	if err != nil {
		logger.Error("LedgerRepairWorkflow failed", withTraceID(input.TraceID, "orderId", input.OrderID, "error", err)...)
		return nil, err
	}
	logger.Info("LedgerRepairWorkflow completed",
		withTraceID(input.TraceID, "orderId", input.OrderID, "linesAdjusted", report.LinesAdjusted, "status", string(report.Status))...)
	return &report, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
