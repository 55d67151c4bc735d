package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"

	returnsserver "github.com/Apurer/go-gin-returns-portal/go"
	"github.com/Apurer/go-gin-returns-portal/internal/app/stores"
	chatobs "github.com/Apurer/go-gin-returns-portal/internal/domains/chat/adapters/observability"
	chatapp "github.com/Apurer/go-gin-returns-portal/internal/domains/chat/application"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/customers/adapters/auth"
	customerobs "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/adapters/observability"
	customerapp "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/application"
	orderobs "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/adapters/observability"
	orderapp "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/application"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/adapters/artifacts"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/adapters/external/carrier"
	returnobs "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/adapters/observability"
	returnworkflows "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/adapters/workflows"
	returnapp "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application"
	returnports "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
	"github.com/Apurer/go-gin-returns-portal/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-returns-portal/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-returns-portal/internal/platform/postgres"
	platformredis "github.com/Apurer/go-gin-returns-portal/internal/platform/redis"
	platformtemporal "github.com/Apurer/go-gin-returns-portal/internal/platform/temporal"
)

const serviceName = "returns-api"

const carrierTimeout = 5 * time.Second

// Server is the wired returns API.
type Server struct {
	Handler *gin.Engine
	Stores  stores.Set

	logger   *slog.Logger
	cleanups []func()
}

// NewServer builds repositories, services, workflows, and the gin router from cfg.
// Optional infrastructure that is missing or unreachable falls back with a warning.
func NewServer(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Server, error) {
	logger := effectiveLogger(instruments)
	s := &Server{logger: logger}

	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	s.cleanups = append(s.cleanups, closeDB)
	if db != nil {
		if err := migrations.Run(db); err != nil {
			s.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	rdb, closeRedis := platformredis.ConnectOptional(ctx, cfg.RedisURL, logger)
	s.cleanups = append(s.cleanups, closeRedis)

	opts := stores.Options{IdempotencyTTL: cfg.IdempotencyTTL, ChatTranscriptTTL: cfg.ChatTranscriptTTL, Logger: logger}
	if rdb != nil {
		s.Stores = stores.New(db, rdb, opts)
	} else {
		s.Stores = stores.New(db, nil, opts)
	}
	if cfg.SeedFixtures {
		if err := s.Stores.Seed(ctx, time.Now()); err != nil {
			s.Close()
			return nil, fmt.Errorf("seed fixtures: %w", err)
		}
		logger.Info("sample data seeded")
	}

	tokens, err := auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.SessionTTL)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("configure tokens: %w", err)
	}
	labels, err := artifacts.NewShippingLabeler(cfg.LabelBaseURL)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("configure shipping labels: %w", err)
	}

	customerService := customerobs.New(
		customerapp.NewService(s.Stores.Customers, s.Stores.Sessions, tokens),
		customerobs.WithLogger(logger),
		customerobs.WithTracer(instruments.Tracer("internal.customers.application")),
		customerobs.WithMeter(instruments.Meter("internal.customers.application")),
	)
	orderService := orderobs.New(
		orderapp.NewService(s.Stores.Orders),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	returnService := returnobs.New(
		returnapp.NewService(s.Stores.Returns, s.Stores.Orders, s.Stores.Customers, artifacts.NewQRCodeGenerator(), labels,
			returnapp.WithIdempotencyStore(s.Stores.Idempotency),
			returnapp.WithReturnWindow(cfg.ReturnWindow()),
		),
		returnobs.WithLogger(logger),
		returnobs.WithTracer(instruments.Tracer("internal.returns.application")),
		returnobs.WithMeter(instruments.Meter("internal.returns.application")),
	)
	chatService := chatobs.New(
		chatapp.NewService(s.Stores.Transcripts),
		chatobs.WithLogger(logger),
		chatobs.WithTracer(instruments.Tracer("internal.chat.application")),
		chatobs.WithMeter(instruments.Meter("internal.chat.application")),
	)

	handlers := returnsserver.ApiHandleFunctions{
		CustomerAPI: returnsserver.NewCustomerAPI(customerService),
		OrderAPI:    returnsserver.NewOrderAPI(orderService),
		ReturnAPI:   returnsserver.NewReturnAPI(returnService, s.returnWorkflows(cfg, instruments, returnService)),
		ChatAPI:     returnsserver.NewChatAPI(chatService),
	}
	s.Handler = returnsserver.NewRouter(handlers, otelgin.Middleware(serviceName))
	return s, nil
}

func (s *Server) returnWorkflows(cfg Config, instruments *platformobservability.Instruments, service returnports.Service) returnports.WorkflowOrchestrator {
	temporalClient, err := platformtemporal.Dial(platformtemporal.DialConfig{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
	}, instruments)
	if err == nil {
		s.cleanups = append(s.cleanups, temporalClient.Close)
		s.logger.Info("Temporal workflows enabled", slog.String("namespace", namespaceOrDefault(cfg.TemporalNamespace)))
		return returnworkflows.NewTemporalReturnWorkflows(temporalClient)
	}
	s.logger.Warn("Temporal workflows unavailable, creating returns inline", slog.String("error", err.Error()))

	opts := []returnworkflows.InlineOption{returnworkflows.WithLogger(s.logger)}
	if cfg.CarrierAPIURL != "" {
		syncer, err := carrier.Dial(cfg.CarrierAPIURL, carrierTimeout)
		if err != nil {
			s.logger.Warn("carrier sync disabled", slog.String("error", err.Error()))
		} else {
			opts = append(opts, returnworkflows.WithCarrierSync(syncer))
		}
	}
	return returnworkflows.NewInlineReturnWorkflows(service, opts...)
}

// PurgeSessions deletes expired sessions every interval until ctx ends.
// It returns immediately when sessions are not stored in PostgreSQL.
func (s *Server) PurgeSessions(ctx context.Context, interval time.Duration) {
	if s.Stores.Purger == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := s.Stores.Purger.PurgeExpired(ctx)
			if err != nil {
				s.logger.Warn("session purge failed", slog.String("error", err.Error()))
				continue
			}
			s.logger.Info("expired sessions purged", slog.Int64("count", purged))
		}
	}
}

// Close releases connections in reverse order of acquisition.
func (s *Server) Close() {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
}

// Run boots the returns HTTP API and blocks until ctx is cancelled or the listener fails.
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
	if cfg.Observability.Environment != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := NewServer(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer server.Close()
	go server.PurgeSessions(ctx, cfg.SessionPurgeInterval())

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("returns API listening", slog.String("addr", httpServer.Addr))
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("returns API server exited", slog.String("addr", httpServer.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	logger.Info("shutting down returns API")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func namespaceOrDefault(namespace string) string {
	if namespace == "" {
		return client.DefaultNamespace
	}
	return namespace
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
