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

	customerdomain "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/domain"
	customerports "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/ports"
)

const tracerName = "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/adapters/observability/service"

// Service decorates the customer service with tracing, logging, and metrics.
type Service struct {
	inner  customerports.Service
	tracer trace.Tracer
	logger *slog.Logger
	logins metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m != nil {
			s.logins, _ = m.Int64Counter("customers.service.logins", metric.WithDescription("Number of login attempts by outcome"))
		}
	}
}

// New wraps the core customer service.
func New(inner customerports.Service, opts ...Option) customerports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
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

func (s *Service) Login(ctx context.Context, customerID string) (*customerdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Login", trace.WithAttributes(attribute.String("customer.id", customerID)))
	defer span.End()

	session, err := s.inner.Login(ctx, customerID)
	s.recordLogin(ctx, err == nil)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "customer login failed", slog.String("customer.id", customerID))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "customer logged in",
		slog.String("customer.id", session.CustomerID), slog.Time("session.expires_at", session.ExpiresAt))
	return session, nil
}

func (s *Service) Logout(ctx context.Context, customerID string) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Logout", trace.WithAttributes(attribute.String("customer.id", customerID)))
	defer span.End()

	s.inner.Logout(ctx, customerID)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "customer logged out", slog.String("customer.id", customerID))
}

func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.Authenticate")
	defer span.End()

	customerID, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		return "", s.handleError(ctx, span, err, "session token rejected")
	}
	span.SetAttributes(attribute.String("customer.id", customerID))
	return customerID, nil
}

func (s *Service) GetCustomer(ctx context.Context, customerID string) (*customerdomain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.GetCustomer", trace.WithAttributes(attribute.String("customer.id", customerID)))
	defer span.End()

	customer, err := s.inner.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load customer", slog.String("customer.id", customerID))
	}
	return customer, nil
}

func (s *Service) recordLogin(ctx context.Context, ok bool) {
	if s.logins != nil {
		s.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("login.success", ok)))
	}
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	}
	return err
}

var _ customerports.Service = (*Service)(nil)
