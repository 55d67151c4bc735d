package ports

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrIdempotencyConflict indicates the same key was used with a different payload or target.
var ErrIdempotencyConflict = errors.New("idempotency conflict")

// ErrIdempotencyInProgress reports that another submission holds the key and has not finished.
// It matches ErrIdempotencyConflict so transports answer 409 for both.
var ErrIdempotencyInProgress = fmt.Errorf("%w: submission with this key is still in progress", ErrIdempotencyConflict)

// PendingReservationTimeout is how long an unfinished reservation blocks its key.
// Older reservations are treated as abandoned and may be claimed again.
const PendingReservationTimeout = time.Minute

// IdempotencyRecord associates a client-supplied key with the RMA it produced.
// RMANumber stays empty while the submission is in flight.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	RMANumber   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Pending reports whether the reservation has not produced an RMA yet.
func (r IdempotencyRecord) Pending() bool {
	return r.RMANumber == ""
}

// Abandoned reports whether a pending reservation has outlived PendingReservationTimeout.
func (r IdempotencyRecord) Abandoned(now time.Time) bool {
	return r.Pending() && now.Sub(r.UpdatedAt) >= PendingReservationTimeout
}

// IdempotencyStore reserves idempotency keys before a return is created so
// concurrent retries of one submission persist exactly one RMA.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Reserve claims the key for requestHash. When the key is already held the
	// stored record is returned together with ErrIdempotencyConflict.
	// Abandoned reservations are claimed again.
	Reserve(ctx context.Context, key, requestHash string) (*IdempotencyRecord, error)
	// Complete points a pending reservation at the RMA it produced.
	Complete(ctx context.Context, key, rmaNumber string) error
	// Release drops a pending reservation after a failed submission.
	// Completed records are kept.
	Release(ctx context.Context, key string) error
}
