package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/customers/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

type session struct {
	token     string
	expiresAt time.Time
}

// SessionStore is an in-memory SessionStore implementation. The latest session per customer wins.
type SessionStore struct {
	sessions sync.Map
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(_ context.Context, customerID, token string, expiresAt time.Time) error {
	s.sessions.Store(customerID, session{token: token, expiresAt: expiresAt})
	return nil
}

func (s *SessionStore) Delete(_ context.Context, customerID string) error {
	s.sessions.Delete(customerID)
	return nil
}

// Active reports whether the customer holds an unexpired session at now.
func (s *SessionStore) Active(customerID string, now time.Time) bool {
	value, ok := s.sessions.Load(customerID)
	if !ok {
		return false
	}
	return now.Before(value.(session).expiresAt)
}
