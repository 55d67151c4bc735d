package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/chat/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/chat/ports"
)

var _ ports.TranscriptStore = (*TranscriptStore)(nil)

// TranscriptStore keeps chat transcripts in process memory.
type TranscriptStore struct {
	mu       sync.RWMutex
	sessions map[string][]domain.Entry
}

func NewTranscriptStore() *TranscriptStore {
	return &TranscriptStore{sessions: map[string][]domain.Entry{}}
}

func (s *TranscriptStore) Append(_ context.Context, sessionID string, entries ...domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], entries...)
	return nil
}

func (s *TranscriptStore) Transcript(_ context.Context, sessionID string) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Entry(nil), s.sessions[sessionID]...), nil
}

func (s *TranscriptStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
