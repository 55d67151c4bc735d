package ports

import (
	"context"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/chat/domain"
)

// TranscriptStore keeps the conversation of each chat session.
type TranscriptStore interface {
	Append(ctx context.Context, sessionID string, entries ...domain.Entry) error
	Transcript(ctx context.Context, sessionID string) ([]domain.Entry, error)
	Delete(ctx context.Context, sessionID string) error
}
