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

	orderdomain "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   orderports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner orderports.Service, opts ...Option) orderports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
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
	return s
}

func (s *Service) LookupOrder(ctx context.Context, orderNumber string) (*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.LookupOrder", trace.WithAttributes(attribute.String("order.number", orderNumber)))
	defer span.End()

	s.logInfo(ctx, "looking up order", slog.String("order.number", orderNumber))
	result, err := s.inner.LookupOrder(ctx, orderNumber)
	if err != nil {
		s.metrics.recordLookup(ctx, false)
		return nil, s.handleError(ctx, span, err, "failed to look up order", slog.String("order.number", orderNumber))
	}
	s.metrics.recordLookup(ctx, true)
	span.SetAttributes(attribute.Int("order.items", len(result.Items)))
	s.logInfo(ctx, "order found",
		slog.String("order.number", result.OrderNumber),
		slog.Int("order.items", len(result.Items)),
		slog.Int("order.eligible_items", len(result.EligibleItems())))
	return result, nil
}

func (s *Service) CustomerOrders(ctx context.Context, customerID string) ([]*orderdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CustomerOrders", trace.WithAttributes(attribute.String("customer.id", customerID)))
	defer span.End()

	result, err := s.inner.CustomerOrders(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customer orders", slog.String("customer.id", customerID))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	s.logInfo(ctx, "customer orders listed", slog.String("customer.id", customerID), slog.Int("orders.count", len(result)))
	return result, nil
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
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	lookups metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	lookups, _ := m.Int64Counter("orders.service.lookups", metric.WithDescription("Number of order lookups by outcome"))
	return serviceMetrics{lookups: lookups}
}

func (m serviceMetrics) recordLookup(ctx context.Context, found bool) {
	if m.lookups != nil {
		m.lookups.Add(ctx, 1, metric.WithAttributes(attribute.Bool("order.found", found)))
	}
}

var _ orderports.Service = (*Service)(nil)
