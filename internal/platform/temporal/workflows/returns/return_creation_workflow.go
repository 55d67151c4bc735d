package returns

import (
	"go.temporal.io/sdk/workflow"

	returntypes "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application/types"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/platform/temporal/sequences"
)

const (
	// ReturnCreationWorkflowName is the public identifier for registering the workflow.
	ReturnCreationWorkflowName = "returns.workflows.Creation"
	// ReturnCreationTaskQueue is the queue consumed by the worker processing return workflows.
	ReturnCreationTaskQueue = "RETURN_CREATION"
)

// ReturnCreationWorkflowInput captures the submission that opens a return request.
type ReturnCreationWorkflowInput struct {
	Command returntypes.CreateReturnInput
	TraceID string
}

// ReturnCreationWorkflow issues an RMA and registers warehouse shipments with the carrier.
func ReturnCreationWorkflow(ctx workflow.Context, input ReturnCreationWorkflowInput) (*domain.ReturnRequest, error) {
	logger := workflow.GetLogger(ctx)
	command := input.Command
	if command.IdempotencyKey == "" {
		// activity retries must not mint a second RMA
		command.IdempotencyKey = workflow.GetInfo(ctx).WorkflowExecution.ID
	}
	logger.Info("ReturnCreationWorkflow started", withTraceID(input.TraceID, "orderNumber", command.OrderNumber)...)
	request, err := sequences.RunReturnCreationSequence(ctx, command)
	if err != nil {
		logger.Error("ReturnCreationWorkflow failed", withTraceID(input.TraceID, "orderNumber", command.OrderNumber, "error", err)...)
		return nil, err
	}
	logger.Info("ReturnCreationWorkflow completed", withTraceID(input.TraceID, "rmaNumber", request.RMANumber)...)
	return request, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
