package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
)

// DefaultKeyPrefix namespaces return idempotency keys.
const DefaultKeyPrefix = "returns:idempotency:"

// DefaultTTL is how long a key can be replayed.
const DefaultTTL = 24 * time.Hour

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore keeps idempotency keys in Redis so several API instances share them.
// Keys expire after the configured TTL.
type IdempotencyStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
	now       func() time.Time
}

// NewIdempotencyStore wraps an existing client. Zero values select the defaults.
func NewIdempotencyStore(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *IdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &IdempotencyStore{client: client, keyPrefix: keyPrefix, ttl: ttl, now: time.Now}
}

type storedRecord struct {
	RequestHash string    `json:"requestHash"`
	RMANumber   string    `json:"rmaNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotencyRecord, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("redis idempotency store not configured")
	}
	return s.load(ctx, s.client, key)
}

func (s *IdempotencyStore) load(ctx context.Context, c getter, key string) (*ports.IdempotencyRecord, error) {
	raw, err := c.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load idempotency key: %w", err)
	}
	var stored storedRecord
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode idempotency key: %w", err)
	}
	return &ports.IdempotencyRecord{
		Key:         key,
		RequestHash: stored.RequestHash,
		RMANumber:   stored.RMANumber,
		CreatedAt:   stored.CreatedAt,
		UpdatedAt:   stored.UpdatedAt,
	}, nil
}

// Reserve claims the key with SETNX. Pending reservations expire after
// ports.PendingReservationTimeout, which releases abandoned submissions.
func (s *IdempotencyStore) Reserve(ctx context.Context, key, requestHash string) (*ports.IdempotencyRecord, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("redis idempotency store not configured")
	}
	now := s.now()
	payload, err := json.Marshal(storedRecord{RequestHash: requestHash, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		return nil, err
	}
	claimed, err := s.client.SetNX(ctx, s.keyPrefix+key, payload, ports.PendingReservationTimeout).Result()
	if err != nil {
		return nil, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if claimed {
		return &ports.IdempotencyRecord{Key: key, RequestHash: requestHash, CreatedAt: now, UpdatedAt: now}, nil
	}
	held, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if held == nil {
		// expired between SETNX and GET
		return s.Reserve(ctx, key, requestHash)
	}
	return held, ports.ErrIdempotencyConflict
}

// Complete stores the RMA and extends the key to the replay TTL.
func (s *IdempotencyStore) Complete(ctx context.Context, key, rmaNumber string) error {
	if s == nil || s.client == nil {
		return errors.New("redis idempotency store not configured")
	}
	redisKey := s.keyPrefix + key
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		held, err := s.load(ctx, tx, key)
		if err != nil {
			return err
		}
		if held == nil {
			return fmt.Errorf("complete idempotency key %q: not reserved", key)
		}
		if !held.Pending() && held.RMANumber != rmaNumber {
			return fmt.Errorf("complete idempotency key %q: %w", key, ports.ErrIdempotencyConflict)
		}
		payload, err := json.Marshal(storedRecord{RequestHash: held.RequestHash, RMANumber: rmaNumber, CreatedAt: held.CreatedAt, UpdatedAt: s.now()})
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, redisKey, payload, s.ttl)
			return nil
		})
		return err
	}, redisKey)
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("complete idempotency key %q: concurrent update: %w", key, err)
	}
	return err
}

// Release deletes the key while it is still pending.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if s == nil || s.client == nil {
		return errors.New("redis idempotency store not configured")
	}
	redisKey := s.keyPrefix + key
	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		held, err := s.load(ctx, tx, key)
		if err != nil || held == nil || !held.Pending() {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, redisKey)
			return nil
		})
		return err
	}, redisKey)
}
