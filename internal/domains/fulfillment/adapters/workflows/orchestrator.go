package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	types "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/application/types"
	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/ports"
	repairworkflows "github.com/Apurer/go-retail-backoffice/internal/platform/temporal/workflows/fulfillment"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalLedgerRepairs)(nil)
	_ ports.WorkflowOrchestrator = (*InlineLedgerRepairs)(nil)
)

// TemporalLedgerRepairs starts ledger repair workflows on a Temporal cluster.
type TemporalLedgerRepairs struct {
	client    client.Client
	taskQueue string
}

// NewTemporalLedgerRepairs wires a Temporal client into the orchestrator.
func NewTemporalLedgerRepairs(c client.Client) *TemporalLedgerRepairs {
	return &TemporalLedgerRepairs{client: c, taskQueue: repairworkflows.LedgerRepairTaskQueue}
}

// RepairOrderLedger runs the durable repair workflow for one order. The
// workflow ID is keyed to the order so concurrent triggers for the same order
// collapse into one execution.
func (o *TemporalLedgerRepairs) RepairOrderLedger(ctx context.Context, orderID int64) (*types.RepairReport, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal ledger repairs not configured")
	}
	workflowID := fmt.Sprintf("ledger-repair-%d", orderID)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		repairworkflows.LedgerRepairWorkflow,
		repairworkflows.LedgerRepairWorkflowInput{OrderID: orderID, TraceID: workflowTraceComponent(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
		} else {
			return nil, err
		}
	}
	var report types.RepairReport
	if err := run.Get(ctx, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// InlineLedgerRepairs executes the service directly without Temporal, useful
// for tests or dev fallbacks.
type InlineLedgerRepairs struct {
	service ports.Service
}

// NewInlineLedgerRepairs wraps the fulfillment service for synchronous execution.
func NewInlineLedgerRepairs(service ports.Service) *InlineLedgerRepairs {
	return &InlineLedgerRepairs{service: service}
}

// RepairOrderLedger delegates to the application service without durable orchestration.
func (o *InlineLedgerRepairs) RepairOrderLedger(ctx context.Context, orderID int64) (*types.RepairReport, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline ledger repairs not configured")
	}
	return o.service.RepairOrderLedger(ctx, orderID)
}

func workflowTraceComponent(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span != nil {
		if spanCtx := span.SpanContext(); spanCtx.IsValid() && spanCtx.TraceID().IsValid() {
			return spanCtx.TraceID().String()
		}
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
