package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/customers/ports"
)

// Service exposes customer bounded context use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
	tokens   ports.TokenIssuer
	now      func() time.Time
}

func NewService(repo ports.Repository, sessions ports.SessionStore, tokens ports.TokenIssuer) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	return &Service{repo: repo, sessions: sessions, tokens: tokens, now: time.Now}
}

// Login checks the customer exists and opens a session for it.
func (s *Service) Login(ctx context.Context, customerID string) (*domain.Session, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, ports.ErrInvalidCredentials
	}
	if _, err := s.repo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ports.ErrInvalidCredentials
		}
		return nil, err
	}
	if s.tokens == nil {
		return nil, errors.New("token issuer not configured")
	}
	token, expiresAt, err := s.tokens.Issue(customerID, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, customerID, token, expiresAt); err != nil {
		return nil, err
	}
	return &domain.Session{CustomerID: customerID, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *Service) Logout(ctx context.Context, customerID string) {
	if strings.TrimSpace(customerID) == "" {
		return
	}
	_ = s.sessions.Delete(ctx, customerID)
}

// Authenticate resolves the customer id carried by a session token.
func (s *Service) Authenticate(_ context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" || s.tokens == nil {
		return "", ports.ErrInvalidToken
	}
	return s.tokens.Verify(token)
}

func (s *Service) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, domain.ErrInvalidCustomerID
	}
	return s.repo.GetByID(ctx, customerID)
}

var _ ports.Service = (*Service)(nil)
