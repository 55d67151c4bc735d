package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application"
	returntypes "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application/types"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
	returnactivities "github.com/Apurer/go-gin-returns-portal/internal/platform/temporal/activities/returns"
	returnworkflows "github.com/Apurer/go-gin-returns-portal/internal/platform/temporal/workflows/returns"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalReturnWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineReturnWorkflows)(nil)
)

// TemporalReturnWorkflows starts return workflows on a Temporal cluster.
type TemporalReturnWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalReturnWorkflows wires a Temporal client into the orchestrator.
func NewTemporalReturnWorkflows(c client.Client) *TemporalReturnWorkflows {
	return &TemporalReturnWorkflows{client: c, taskQueue: returnworkflows.ReturnCreationTaskQueue}
}

// CreateReturn starts the Temporal workflow that issues an RMA and waits for its result.
func (o *TemporalReturnWorkflows) CreateReturn(ctx context.Context, input returntypes.CreateReturnInput) (*domain.ReturnRequest, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal return workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildReturnCreationWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		returnworkflows.ReturnCreationWorkflow,
		returnworkflows.ReturnCreationWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var request domain.ReturnRequest
			if err := existingRun.Get(ctx, &request); err != nil {
				return nil, restoreError(err)
			}
			return &request, nil
		}
		return nil, err
	}
	var request domain.ReturnRequest
	if err := run.Get(ctx, &request); err != nil {
		return nil, restoreError(err)
	}
	return &request, nil
}

// restoreError maps rejections raised inside activities back onto the
// sentinel errors the transport layer understands.
func restoreError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	var sentinel error
	switch appErr.Type() {
	case returnactivities.ErrorTypeInvalidInput:
		sentinel = application.ErrInvalidInput
	case returnactivities.ErrorTypeNotOwned:
		sentinel = domain.ErrOrderNotOwned
	case returnactivities.ErrorTypeNotFound:
		sentinel = ports.ErrNotFound
	case returnactivities.ErrorTypeConflict:
		sentinel = ports.ErrIdempotencyConflict
	default:
		return err
	}
	return fmt.Errorf("%w: %s", sentinel, appErr.Error())
}

// InlineReturnWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineReturnWorkflows struct {
	service ports.Service
	carrier ports.CarrierSync
	logger  *slog.Logger
}

// InlineOption customises the inline orchestrator.
type InlineOption func(*InlineReturnWorkflows)

// WithCarrierSync registers warehouse shipments after the RMA is stored.
func WithCarrierSync(carrier ports.CarrierSync) InlineOption {
	return func(o *InlineReturnWorkflows) { o.carrier = carrier }
}

// WithLogger sets the logger used to report carrier failures.
func WithLogger(logger *slog.Logger) InlineOption {
	return func(o *InlineReturnWorkflows) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewInlineReturnWorkflows wraps the returns service for synchronous execution.
func NewInlineReturnWorkflows(service ports.Service, opts ...InlineOption) *InlineReturnWorkflows {
	o := &InlineReturnWorkflows{service: service, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// CreateReturn delegates to the application service without durable orchestration.
// A carrier failure is logged; the stored RMA is still returned.
func (o *InlineReturnWorkflows) CreateReturn(ctx context.Context, input returntypes.CreateReturnInput) (*domain.ReturnRequest, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline return workflows not configured")
	}
	request, err := o.service.CreateReturn(ctx, input)
	if err != nil {
		return nil, err
	}
	if o.carrier != nil {
		if err := o.carrier.RegisterShipment(ctx, request); err != nil {
			o.logger.ErrorContext(ctx, "carrier shipment registration failed",
				slog.String("rmaNumber", request.RMANumber),
				slog.String("error", err.Error()))
		}
	}
	return request, nil
}

func buildReturnCreationWorkflowID(input returntypes.CreateReturnInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("return-creation-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("return-creation-%s-%s", strings.TrimSpace(input.OrderNumber), traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// first 16 hex chars keep workflow IDs readable
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
