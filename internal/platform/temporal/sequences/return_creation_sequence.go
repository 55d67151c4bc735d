package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	returntypes "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application/types"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	returnactivities "github.com/Apurer/go-gin-returns-portal/internal/platform/temporal/activities/returns"
)

// RunReturnCreationSequence persists a return and, for warehouse shipments, registers it with the carrier.
func RunReturnCreationSequence(ctx workflow.Context, input returntypes.CreateReturnInput) (*domain.ReturnRequest, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("return creation sequence started", "orderNumber", input.OrderNumber)
	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	registerOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		HeartbeatTimeout:    10 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}

	var request domain.ReturnRequest
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, persistOptions), returnactivities.PersistReturnActivityName, input).Get(ctx, &request)
	if err != nil {
		logger.Error("return creation sequence failed", "orderNumber", input.OrderNumber, "error", err)
		return nil, err
	}
	logger.Info("return creation sequence persisted", "rmaNumber", request.RMANumber)

	if request.Method == domain.MethodShipToWarehouse {
		registerInput := returnactivities.RMAIdentifier{RMANumber: request.RMANumber}
		if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, registerOptions), returnactivities.RegisterShipmentActivityName, registerInput).Get(ctx, nil); err != nil {
			// the RMA exists; carrier registration can be replayed later
			logger.Error("return creation sequence shipment registration failed", "rmaNumber", request.RMANumber, "error", err)
			return &request, nil
		}
		logger.Info("return creation sequence registered shipment", "rmaNumber", request.RMANumber)
	}
	return &request, nil
}
