package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/chat/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/chat/ports"
)

const (
	defaultKeyPrefix = "chat:session:"
	defaultTTL       = 2 * time.Hour
)

var _ ports.TranscriptStore = (*TranscriptStore)(nil)

// TranscriptStore keeps chat transcripts in Redis lists that expire after inactivity.
type TranscriptStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewTranscriptStore builds a Redis transcript store. Empty prefix or non-positive ttl use defaults.
func NewTranscriptStore(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *TranscriptStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &TranscriptStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (s *TranscriptStore) Append(ctx context.Context, sessionID string, entries ...domain.Entry) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		raw, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal chat entry: %w", err)
		}
		values = append(values, raw)
	}
	key := s.key(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.Expire(ctx, key, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *TranscriptStore) Transcript(ctx context.Context, sessionID string) ([]domain.Entry, error) {
	if err := s.ensureClient(); err != nil {
		return nil, err
	}
	raw, err := s.client.LRange(ctx, s.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]domain.Entry, 0, len(raw))
	for _, item := range raw {
		var entry domain.Entry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal chat entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *TranscriptStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *TranscriptStore) key(sessionID string) string {
	return s.keyPrefix + sessionID
}

func (s *TranscriptStore) ensureClient() error {
	if s == nil || s.client == nil {
		return errors.New("redis transcript store not configured")
	}
	return nil
}
