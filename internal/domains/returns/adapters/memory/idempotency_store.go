package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore keeps return submission keys in process memory.
// A key moves from reserved (no RMA) to completed; only reserved keys can be released.
type IdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]ports.IdempotencyRecord
	now  func() time.Time
}

// NewIdempotencyStore constructs an empty in-memory store.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		keys: map[string]ports.IdempotencyRecord{},
		now:  time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (s *IdempotencyStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Get returns a copy of the record for key, or nil when absent.
func (s *IdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.keys[key]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Reserve claims key unless another submission holds it.
func (s *IdempotencyStore) Reserve(_ context.Context, key, requestHash string) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if held, ok := s.keys[key]; ok && !held.Abandoned(now) {
		return &held, ports.ErrIdempotencyConflict
	}
	reservation := ports.IdempotencyRecord{Key: key, RequestHash: requestHash, CreatedAt: now, UpdatedAt: now}
	s.keys[key] = reservation
	return &reservation, nil
}

// Complete records the RMA produced under a reservation.
func (s *IdempotencyStore) Complete(_ context.Context, key, rmaNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, ok := s.keys[key]
	switch {
	case !ok:
		return fmt.Errorf("complete idempotency key %q: not reserved", key)
	case !reservation.Pending() && reservation.RMANumber != rmaNumber:
		return fmt.Errorf("complete idempotency key %q: %w", key, ports.ErrIdempotencyConflict)
	}
	reservation.RMANumber = rmaNumber
	reservation.UpdatedAt = s.now()
	s.keys[key] = reservation
	return nil
}

// Release forgets a reservation that never produced an RMA.
func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reservation, ok := s.keys[key]; ok && reservation.Pending() {
		delete(s.keys, key)
	}
	return nil
}
