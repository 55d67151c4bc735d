package ports

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid session token")

// TokenIssuer signs and verifies customer session tokens.
type TokenIssuer interface {
	Issue(customerID string, now time.Time) (token string, expiresAt time.Time, err error)
	Verify(token string) (customerID string, err error)
}
