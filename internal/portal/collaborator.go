// Package portal holds the client-side behavior of the returns portal: the
// return creation wizard, the status timeline, and the fetch-and-render views.
// Views receive the shopper's Session explicitly on every call.
package portal

import (
	"context"

	"github.com/Apurer/go-gin-returns-portal/internal/clients/http/rma"
)

// Collaborator is the backend the portal talks to.
type Collaborator interface {
	Login(ctx context.Context, customerID string) (*rma.Session, error)
	LookupOrder(ctx context.Context, orderNumber string) (*rma.Order, error)
	CreateReturn(ctx context.Context, session rma.Session, request rma.ReturnRequest) (*rma.ReturnResponse, error)
	GetReturn(ctx context.Context, rmaNumber string) (*rma.ReturnResponse, error)
	CustomerReturns(ctx context.Context, session rma.Session) ([]rma.ReturnResponse, error)
}

// ChatClient is the assistant backend used by the chat widget.
type ChatClient interface {
	SendChat(ctx context.Context, message rma.ChatMessage) (*rma.ChatReply, error)
	ClearChat(ctx context.Context, sessionID string) error
}

// logouter is implemented by collaborators that can end a server session.
type logouter interface {
	Logout(ctx context.Context, session rma.Session) error
}

var (
	_ Collaborator = (*rma.Client)(nil)
	_ ChatClient   = (*rma.Client)(nil)
	_ logouter     = (*rma.Client)(nil)
)
