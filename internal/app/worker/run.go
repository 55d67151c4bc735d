package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	temporalworker "go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-returns-portal/internal/app/stores"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/adapters/artifacts"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/adapters/external/carrier"
	returnobs "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/adapters/observability"
	returnapp "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application"
	returnports "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
	"github.com/Apurer/go-gin-returns-portal/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-returns-portal/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-returns-portal/internal/platform/postgres"
	platformredis "github.com/Apurer/go-gin-returns-portal/internal/platform/redis"
	platformtemporal "github.com/Apurer/go-gin-returns-portal/internal/platform/temporal"
	returnactivities "github.com/Apurer/go-gin-returns-portal/internal/platform/temporal/activities/returns"
	returnworkflows "github.com/Apurer/go-gin-returns-portal/internal/platform/temporal/workflows/returns"
)

const serviceName = "returns-worker"

// Registry is satisfied by Temporal workers and the workflow test environment.
type Registry interface {
	RegisterWorkflowWithOptions(w interface{}, options workflow.RegisterOptions)
	RegisterActivityWithOptions(a interface{}, options activity.RegisterOptions)
}

// Register binds the return creation workflow and its activities under their public names.
func Register(r Registry, activities *returnactivities.Activities) {
	r.RegisterWorkflowWithOptions(returnworkflows.ReturnCreationWorkflow, workflow.RegisterOptions{Name: returnworkflows.ReturnCreationWorkflowName})
	r.RegisterActivityWithOptions(activities.PersistReturn, activity.RegisterOptions{Name: returnactivities.PersistReturnActivityName})
	r.RegisterActivityWithOptions(activities.RegisterShipment, activity.RegisterOptions{Name: returnactivities.RegisterShipmentActivityName})
}

// NewActivities builds the returns service over set and wraps it for Temporal.
func NewActivities(cfg Config, set stores.Set, instruments *platformobservability.Instruments) (*returnactivities.Activities, error) {
	logger := slog.Default()
	if instruments != nil && instruments.Logger != nil {
		logger = instruments.Logger
	}
	labels, err := artifacts.NewShippingLabeler(cfg.LabelBaseURL)
	if err != nil {
		return nil, fmt.Errorf("configure shipping labels: %w", err)
	}
	service := returnobs.New(
		returnapp.NewService(set.Returns, set.Orders, set.Customers, artifacts.NewQRCodeGenerator(), labels,
			returnapp.WithIdempotencyStore(set.Idempotency),
			returnapp.WithReturnWindow(cfg.ReturnWindow()),
		),
		returnobs.WithLogger(logger),
		returnobs.WithTracer(instruments.Tracer("internal.returns.application")),
		returnobs.WithMeter(instruments.Meter("internal.returns.application")),
	)

	var sync returnports.CarrierSync
	if cfg.CarrierAPIURL != "" {
		syncer, err := carrier.Dial(cfg.CarrierAPIURL, cfg.CarrierTimeout)
		if err != nil {
			return nil, fmt.Errorf("configure carrier: %w", err)
		}
		sync = syncer
	} else {
		logger.Warn("CARRIER_API_URL not set, warehouse shipments are not registered with the carrier")
	}
	return returnactivities.NewActivities(service, set.Returns, sync), nil
}

// Run polls the return creation task queue until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, cfg.Observability)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer closeDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}
	rdb, closeRedis := platformredis.ConnectOptional(ctx, cfg.RedisURL, logger)
	defer closeRedis()
	opts := stores.Options{IdempotencyTTL: cfg.IdempotencyTTL, Logger: logger}
	var set stores.Set
	if rdb != nil {
		set = stores.New(db, rdb, opts)
	} else {
		set = stores.New(db, nil, opts)
	}
	if set.Aggregates == stores.BackendMemory {
		logger.Warn("worker is using in-memory repositories; returns it creates are not visible to the API")
	}

	activities, err := NewActivities(cfg, set, instruments)
	if err != nil {
		return err
	}
	temporalClient, err := platformtemporal.Dial(platformtemporal.DialConfig{
		Address:    cfg.TemporalAddress,
		Namespace:  cfg.TemporalNamespace,
		TracerName: "temporal-worker",
	}, instruments)
	if err != nil {
		return fmt.Errorf("failed to create Temporal client: %w", err)
	}
	defer temporalClient.Close()

	w := temporalworker.New(temporalClient, returnworkflows.ReturnCreationTaskQueue, temporalworker.Options{})
	Register(w, activities)

	interrupt := make(chan interface{})
	go func() {
		<-ctx.Done()
		close(interrupt)
	}()
	logger.Info("worker listening", slog.String("taskQueue", returnworkflows.ReturnCreationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(interrupt); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Temporal worker stopped")
	return nil
}
