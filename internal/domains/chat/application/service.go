package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/chat/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/chat/ports"
)

// ErrInvalidInput signals an unusable chat message.
var ErrInvalidInput = errors.New("invalid chat input")

// Service answers chat messages with the canned keyword assistant.
type Service struct {
	store      ports.TranscriptStore
	now        func() time.Time
	newSession func() string
}

type Option func(*Service)

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSessionIDs overrides session id generation.
func WithSessionIDs(next func() string) Option {
	return func(s *Service) {
		if next != nil {
			s.newSession = next
		}
	}
}

// NewService wires the chat service. store may be nil when transcripts are not kept.
func NewService(store ports.TranscriptStore, opts ...Option) *Service {
	s := &Service{
		store:      store,
		now:        time.Now,
		newSession: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Send classifies the message and records both sides of the exchange.
func (s *Service) Send(ctx context.Context, message domain.Message) (*domain.Reply, error) {
	text := strings.TrimSpace(message.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrEmptyMessage)
	}
	sessionID := strings.TrimSpace(message.SessionID)
	if sessionID == "" {
		sessionID = s.newSession()
	}
	now := s.now()
	reply := domain.NewReply(text, sessionID, now)
	if s.store != nil {
		err := s.store.Append(ctx, sessionID,
			domain.Entry{Role: domain.RoleCustomer, Text: text, At: now},
			domain.Entry{Role: domain.RoleAssistant, Text: reply.Response, Intent: reply.Intent, At: now},
		)
		if err != nil {
			return nil, fmt.Errorf("record chat transcript: %w", err)
		}
	}
	return &reply, nil
}

// ClearSession drops the transcript of sessionID. Unknown sessions are ignored.
func (s *Service) ClearSession(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" || s.store == nil {
		return nil
	}
	return s.store.Delete(ctx, sessionID)
}

var _ ports.Service = (*Service)(nil)
