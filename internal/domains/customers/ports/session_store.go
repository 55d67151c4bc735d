package ports

import (
	"context"
	"time"
)

// SessionStore abstracts session/token persistence.
type SessionStore interface {
	Save(ctx context.Context, customerID, token string, expiresAt time.Time) error
	Delete(ctx context.Context, customerID string) error
}

// NoopSessionStore is used when sessions are not tracked server-side.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(context.Context, string, string, time.Time) error { return nil }
func (noopSessionStore) Delete(context.Context, string) error                  { return nil }
