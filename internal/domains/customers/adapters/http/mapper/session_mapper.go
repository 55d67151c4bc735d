package mapper

import (
	"time"

	customerdomain "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/domain"
)

// LoginRequest is the body of POST /api/customers/login.
type LoginRequest struct {
	CustomerID string `json:"customerId" binding:"required,max=64"`
}

// Session is the login response.
type Session struct {
	CustomerID string    `json:"customerId"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// FromDomainSession converts a domain session to its JSON shape.
func FromDomainSession(session *customerdomain.Session) Session {
	if session == nil {
		return Session{}
	}
	return Session{CustomerID: session.CustomerID, Token: session.Token, ExpiresAt: session.ExpiresAt}
}
