package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	returntypes "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application/types"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
)

const tracerName = "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/adapters/observability/service"

// Service decorates the returns application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// CreateReturn issues a new RMA with instrumentation.
func (s *Service) CreateReturn(ctx context.Context, input returntypes.CreateReturnInput) (*domain.ReturnRequest, error) {
	ctx, span := s.startSpan(ctx, "ReturnService.CreateReturn",
		attribute.String("order.number", input.OrderNumber),
		attribute.String("customer.id", input.CustomerID),
		attribute.String("return.method", input.Method),
		attribute.Int("return.items", len(input.Items)),
		attribute.Bool("return.idempotent", input.IdempotencyKey != ""),
	)
	defer span.End()

	s.logInfo(ctx, "creating return", slog.String("order.number", input.OrderNumber), slog.String("customer.id", input.CustomerID))
	result, err := s.inner.CreateReturn(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create return", slog.String("order.number", input.OrderNumber))
	}
	span.SetAttributes(attribute.String("return.rma", result.RMANumber))
	s.metrics.recordCreated(ctx, result.Method)
	s.logInfo(ctx, "return created",
		slog.String("return.rma", result.RMANumber),
		slog.String("return.method", string(result.Method)),
		slog.String("status", string(result.Status)))
	return result, nil
}

// GetReturn loads a single RMA.
func (s *Service) GetReturn(ctx context.Context, rmaNumber string) (*domain.ReturnRequest, error) {
	ctx, span := s.startSpan(ctx, "ReturnService.GetReturn", attribute.String("return.rma", rmaNumber))
	defer span.End()

	result, err := s.inner.GetReturn(ctx, rmaNumber)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to get return", slog.String("return.rma", rmaNumber))
	}
	return result, nil
}

// CustomerReturns lists the RMAs of a customer.
func (s *Service) CustomerReturns(ctx context.Context, customerID string) ([]*domain.ReturnRequest, error) {
	ctx, span := s.startSpan(ctx, "ReturnService.CustomerReturns", attribute.String("customer.id", customerID))
	defer span.End()

	result, err := s.inner.CustomerReturns(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customer returns", slog.String("customer.id", customerID))
	}
	span.SetAttributes(attribute.Int("return.result.count", len(result)))
	s.logInfo(ctx, "listed customer returns", slog.String("customer.id", customerID), slog.Int("count", len(result)))
	return result, nil
}

// UpdateStatus moves an RMA along its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, input returntypes.UpdateStatusInput) (*domain.ReturnRequest, error) {
	ctx, span := s.startSpan(ctx, "ReturnService.UpdateStatus",
		attribute.String("return.rma", input.RMANumber),
		attribute.String("return.status.requested", input.Status))
	defer span.End()

	s.logInfo(ctx, "updating return status", slog.String("return.rma", input.RMANumber), slog.String("status", input.Status))
	result, err := s.inner.UpdateStatus(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update return status", slog.String("return.rma", input.RMANumber))
	}
	s.metrics.recordStatusUpdated(ctx, result.Status)
	s.logInfo(ctx, "return status updated", slog.String("return.rma", result.RMANumber), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	returnsCreated      metric.Int64Counter
	returnStatusUpdated metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("returns.service.created", metric.WithDescription("Number of return requests created"))
	updated, _ := m.Int64Counter("returns.service.status_updated", metric.WithDescription("Number of return status changes"))
	return serviceMetrics{
		returnsCreated:      created,
		returnStatusUpdated: updated,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, method domain.Method) {
	addCounter(ctx, m.returnsCreated, 1, attribute.String("return.method", string(method)))
}

func (m serviceMetrics) recordStatusUpdated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.returnStatusUpdated, 1, attribute.String("return.status", string(status)))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
