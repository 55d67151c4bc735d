package returns

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	customerports "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/ports"
	orderports "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application"
	returntypes "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application/types"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	returnsports "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
)

const (
	// PersistReturnActivityName validates and stores a return request.
	PersistReturnActivityName = "returns.activities.PersistReturn"
	// RegisterShipmentActivityName announces a warehouse return to the carrier.
	RegisterShipmentActivityName = "returns.activities.RegisterShipment"
)

// Application error types for rejections that retrying cannot fix.
const (
	ErrorTypeInvalidInput = "ReturnInvalidInput"
	ErrorTypeNotOwned     = "ReturnOrderNotOwned"
	ErrorTypeNotFound     = "ReturnNotFound"
	ErrorTypeConflict     = "ReturnConflict"
)

// RMAIdentifier addresses an existing return request.
type RMAIdentifier struct {
	RMANumber string
}

// Activities groups activities that operate on the returns bounded context.
type Activities struct {
	service returnsports.Service
	repo    returnsports.Repository
	carrier returnsports.CarrierSync
}

// NewActivities wires the returns collaborators into the Temporal activities bundle.
// carrier may be nil, in which case shipment registration is skipped.
func NewActivities(service returnsports.Service, repo returnsports.Repository, carrier returnsports.CarrierSync) *Activities {
	return &Activities{service: service, repo: repo, carrier: carrier}
}

// PersistReturn stores a new return request and returns it.
func (a *Activities) PersistReturn(ctx context.Context, input returntypes.CreateReturnInput) (*domain.ReturnRequest, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("return persist activity not initialized", "orderNumber", input.OrderNumber)
		return nil, errors.New("return persist activity not initialized")
	}
	logger.Info("PersistReturn activity started", "orderNumber", input.OrderNumber, "customerId", input.CustomerID)
	request, err := a.service.CreateReturn(ctx, input)
	if err != nil {
		logger.Error("PersistReturn activity failed", "orderNumber", input.OrderNumber, "error", err)
		return nil, classify(err)
	}
	logger.Info("PersistReturn activity completed", "rmaNumber", request.RMANumber)
	return request, nil
}

// RegisterShipment loads a return and registers it with the carrier.
func (a *Activities) RegisterShipment(ctx context.Context, input RMAIdentifier) error {
	logger := activity.GetLogger(ctx)
	if a == nil {
		logger.Error("shipment activity not initialized", "rmaNumber", input.RMANumber)
		return errors.New("shipment activity not initialized")
	}
	if a.carrier == nil {
		logger.Info("carrier not configured; skipping", "rmaNumber", input.RMANumber)
		return nil
	}
	if a.repo == nil {
		logger.Error("return repository not configured for shipment registration", "rmaNumber", input.RMANumber)
		return errors.New("return repository not configured for shipment registration")
	}

	var hb registerHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Completed {
		logger.Info("RegisterShipment already completed in prior attempt; skipping", "rmaNumber", input.RMANumber)
		return nil
	}

	logger.Info("RegisterShipment activity started", "rmaNumber", input.RMANumber)
	request, err := a.repo.GetByRMA(ctx, input.RMANumber)
	if err != nil {
		logger.Error("RegisterShipment failed to load return", "rmaNumber", input.RMANumber, "error", err)
		return err
	}
	if err := a.carrier.RegisterShipment(ctx, request); err != nil {
		logger.Error("RegisterShipment failed", "rmaNumber", input.RMANumber, "error", err)
		return err
	}
	activity.RecordHeartbeat(ctx, registerHeartbeat{Completed: true})
	logger.Info("RegisterShipment activity completed", "rmaNumber", input.RMANumber)
	return nil
}

type registerHeartbeat struct {
	Completed bool
}

// classify marks business rejections as non-retryable so the workflow fails fast.
func classify(err error) error {
	var errType string
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		errType = ErrorTypeInvalidInput
	case errors.Is(err, domain.ErrOrderNotOwned):
		errType = ErrorTypeNotOwned
	case errors.Is(err, returnsports.ErrNotFound), errors.Is(err, orderports.ErrNotFound), errors.Is(err, customerports.ErrNotFound):
		errType = ErrorTypeNotFound
	case errors.Is(err, returnsports.ErrIdempotencyInProgress):
		// retried until the holder finishes or its reservation lapses
		return err
	case errors.Is(err, returnsports.ErrIdempotencyConflict):
		errType = ErrorTypeConflict
	default:
		return err
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), errType, err)
}
