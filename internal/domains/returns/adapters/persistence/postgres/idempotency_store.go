package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore persists idempotency keys in PostgreSQL.
// A reservation is a row with an empty rma_number; the primary key serialises competing claims.
type IdempotencyStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewIdempotencyStore wires a PostgreSQL-backed idempotency store.
// Duplicate keys are detected through gorm.ErrDuplicatedKey, so the DB must be opened with TranslateError.
func NewIdempotencyStore(db *gorm.DB) *IdempotencyStore {
	return &IdempotencyStore{db: db, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (s *IdempotencyStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Get loads a record by key, returning nil when absent.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotencyRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record idempotencyRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toPortRecord(&record), nil
}

// Reserve inserts a pending row for key. A duplicate key takes over an abandoned
// reservation or reports the holder with ErrIdempotencyConflict.
func (s *IdempotencyStore) Reserve(ctx context.Context, key, requestHash string) (*ports.IdempotencyRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	row := idempotencyRecord{Key: key, RequestHash: requestHash, CreatedAt: now, UpdatedAt: now}
	err := s.db.WithContext(ctx).Create(&row).Error
	if err == nil {
		return toPortRecord(&row), nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	takeover := s.db.WithContext(ctx).Model(&idempotencyRecord{}).
		Where("key = ? AND rma_number = ? AND updated_at < ?", key, "", now.Add(-ports.PendingReservationTimeout)).
		Updates(map[string]any{"request_hash": requestHash, "created_at": now, "updated_at": now})
	if takeover.Error != nil {
		return nil, takeover.Error
	}
	if takeover.RowsAffected == 1 {
		return toPortRecord(&row), nil
	}
	held, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if held == nil {
		// released between the insert and the lookup
		return s.Reserve(ctx, key, requestHash)
	}
	return held, ports.ErrIdempotencyConflict
}

// Complete stores the RMA on a pending row.
func (s *IdempotencyStore) Complete(ctx context.Context, key, rmaNumber string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Model(&idempotencyRecord{}).
		Where("key = ? AND (rma_number = ? OR rma_number = ?)", key, "", rmaNumber).
		Updates(map[string]any{"rma_number": rmaNumber, "updated_at": s.now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}
	held, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if held == nil {
		return fmt.Errorf("complete idempotency key %q: not reserved", key)
	}
	return fmt.Errorf("complete idempotency key %q: %w", key, ports.ErrIdempotencyConflict)
}

// Release deletes a pending row; completed rows are left alone.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("key = ? AND rma_number = ?", key, "").Delete(&idempotencyRecord{}).Error
}

func (s *IdempotencyStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres idempotency store not configured")
	}
	return nil
}

type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	RMANumber   string    `gorm:"column:rma_number;size:32;not null;default:''"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;index"`
}

func (idempotencyRecord) TableName() string { return "return_idempotency_keys" }

func toPortRecord(rec *idempotencyRecord) *ports.IdempotencyRecord {
	if rec == nil {
		return nil
	}
	return &ports.IdempotencyRecord{
		Key:         rec.Key,
		RequestHash: rec.RequestHash,
		RMANumber:   rec.RMANumber,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
