package ports

import (
	"context"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/chat/domain"
)

// Service defines the chat use cases exposed to adapters (inbound/driving port).
type Service interface {
	Send(ctx context.Context, message domain.Message) (*domain.Reply, error)
	ClearSession(ctx context.Context, sessionID string) error
}
