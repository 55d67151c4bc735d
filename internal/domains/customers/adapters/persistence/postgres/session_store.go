package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/customers/ports"
)

// DefaultSessionTTL applies when a session is saved without an expiry.
const DefaultSessionTTL = 24 * time.Hour

// SessionStore persists customer sessions in PostgreSQL.
type SessionStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSessionStore wires a PostgreSQL-backed session store. Caller owns DB lifecycle.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db, now: time.Now}
}

type sessionRecord struct {
	Token      string     `gorm:"primaryKey;column:token;size:1024"`
	CustomerID string     `gorm:"column:customer_id;size:64;index"`
	ExpiresAt  *time.Time `gorm:"column:expires_at;index"`
	CreatedAt  time.Time  `gorm:"column:created_at;index"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "customer_sessions" }

// Save upserts a session token for the customer.
func (s *SessionStore) Save(ctx context.Context, customerID, token string, expiresAt time.Time) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	customerID = strings.TrimSpace(customerID)
	token = strings.TrimSpace(token)
	if customerID == "" || token == "" {
		return errors.New("customer id and token are required")
	}
	if expiresAt.IsZero() {
		expiresAt = s.now().Add(DefaultSessionTTL)
	}
	rec := sessionRecord{CustomerID: customerID, Token: token, ExpiresAt: &expiresAt}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"customer_id", "expires_at", "updated_at"}),
		}).
		Create(&rec).Error
}

// Delete removes every session of the customer.
func (s *SessionStore) Delete(ctx context.Context, customerID string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "customer_id = ?", customerID).Error
}

// PurgeExpired removes all expired sessions and reports how many were deleted.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Where("expires_at IS NOT NULL AND expires_at <= ?", s.now()).Delete(&sessionRecord{})
	return result.RowsAffected, result.Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
