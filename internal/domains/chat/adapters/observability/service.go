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

	chatdomain "github.com/Apurer/go-gin-returns-portal/internal/domains/chat/domain"
	chatports "github.com/Apurer/go-gin-returns-portal/internal/domains/chat/ports"
)

const tracerName = "github.com/Apurer/go-gin-returns-portal/internal/domains/chat/adapters/observability/service"

// Service decorates the chat service with tracing, logging, and metrics.
type Service struct {
	inner    chatports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	messages metric.Int64Counter
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
			s.messages, _ = m.Int64Counter("chat.service.messages", metric.WithDescription("Number of chat messages answered by intent"))
		}
	}
}

// New wraps the core chat service.
func New(inner chatports.Service, opts ...Option) chatports.Service {
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

func (s *Service) Send(ctx context.Context, message chatdomain.Message) (*chatdomain.Reply, error) {
	ctx, span := s.tracer.Start(ctx, "ChatService.Send", trace.WithAttributes(attribute.String("chat.session_id", message.SessionID)))
	defer span.End()

	reply, err := s.inner.Send(ctx, message)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelWarn, "chat message failed",
			slog.String("chat.session_id", message.SessionID), slog.String("error", err.Error()))
		return nil, err
	}
	span.SetAttributes(attribute.String("chat.intent", string(reply.Intent)), attribute.String("chat.session_id", reply.SessionID))
	if s.messages != nil {
		s.messages.Add(ctx, 1, metric.WithAttributes(attribute.String("chat.intent", string(reply.Intent))))
	}
	s.logger.LogAttrs(ctx, slog.LevelDebug, "chat message answered",
		slog.String("chat.session_id", reply.SessionID), slog.String("chat.intent", string(reply.Intent)))
	return reply, nil
}

func (s *Service) ClearSession(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "ChatService.ClearSession", trace.WithAttributes(attribute.String("chat.session_id", sessionID)))
	defer span.End()

	if err := s.inner.ClearSession(ctx, sessionID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelWarn, "chat session clear failed",
			slog.String("chat.session_id", sessionID), slog.String("error", err.Error()))
		return err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "chat session cleared", slog.String("chat.session_id", sessionID))
	return nil
}

var _ chatports.Service = (*Service)(nil)
