package stores

import (
	"context"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	chatcache "github.com/Apurer/go-gin-returns-portal/internal/domains/chat/adapters/cache"
	chatmemory "github.com/Apurer/go-gin-returns-portal/internal/domains/chat/adapters/memory"
	chatports "github.com/Apurer/go-gin-returns-portal/internal/domains/chat/ports"
	customermemory "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/adapters/memory"
	customerspg "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/adapters/persistence/postgres"
	customerports "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/ports"
	ordermemory "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/adapters/memory"
	orderspg "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/adapters/persistence/postgres"
	orderports "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/ports"
	returncache "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/adapters/cache"
	returnmemory "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/adapters/memory"
	returnspg "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/adapters/persistence/postgres"
	returnports "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
	"github.com/Apurer/go-gin-returns-portal/internal/platform/fixtures"
)

const (
	idempotencyKeyPrefix = "returns:idempotency:"
	transcriptKeyPrefix  = "chat:transcript:"
)

// Backend names where aggregates live.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
)

// SessionPurger removes expired login sessions.
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Options tunes the Redis-backed stores.
type Options struct {
	IdempotencyTTL    time.Duration
	ChatTranscriptTTL time.Duration
	Logger            *slog.Logger
}

// Set holds one implementation per persistence port.
type Set struct {
	Customers   customerports.Repository
	Sessions    customerports.SessionStore
	Orders      orderports.Repository
	Returns     returnports.Repository
	Idempotency returnports.IdempotencyStore
	Transcripts chatports.TranscriptStore
	// Purger is nil unless sessions are stored in PostgreSQL.
	Purger SessionPurger

	Aggregates      Backend
	IdempotencyKeys Backend
	ChatTranscripts Backend
}

// New picks PostgreSQL repositories when db is set and memory otherwise.
// Idempotency keys prefer Redis, then PostgreSQL, then memory.
// Chat transcripts prefer Redis, then memory.
func New(db *gorm.DB, rdb goredis.UniversalClient, opts Options) Set {
	var set Set
	if db != nil {
		sessions := customerspg.NewSessionStore(db)
		set.Customers = customerspg.NewRepository(db)
		set.Sessions = sessions
		set.Purger = sessions
		set.Orders = orderspg.NewRepository(db)
		set.Returns = returnspg.NewRepository(db)
		set.Idempotency = returnspg.NewIdempotencyStore(db)
		set.Aggregates = BackendPostgres
		set.IdempotencyKeys = BackendPostgres
	} else {
		set.Customers = customermemory.NewRepository()
		set.Sessions = customermemory.NewSessionStore()
		set.Orders = ordermemory.NewRepository()
		set.Returns = returnmemory.NewRepository()
		set.Idempotency = returnmemory.NewIdempotencyStore()
		set.Aggregates = BackendMemory
		set.IdempotencyKeys = BackendMemory
	}

	if rdb != nil {
		set.Idempotency = returncache.NewIdempotencyStore(rdb, idempotencyKeyPrefix, opts.IdempotencyTTL)
		set.Transcripts = chatcache.NewTranscriptStore(rdb, transcriptKeyPrefix, opts.ChatTranscriptTTL)
		set.IdempotencyKeys = BackendRedis
		set.ChatTranscripts = BackendRedis
	} else {
		set.Transcripts = chatmemory.NewTranscriptStore()
		set.ChatTranscripts = BackendMemory
	}

	if opts.Logger != nil {
		opts.Logger.Info("stores configured",
			slog.String("aggregates", string(set.Aggregates)),
			slog.String("idempotencyKeys", string(set.IdempotencyKeys)),
			slog.String("chatTranscripts", string(set.ChatTranscripts)),
		)
	}
	return set
}

// Seed loads the demo customers, orders, and sample return.
func (s Set) Seed(ctx context.Context, now time.Time) error {
	return fixtures.Load(ctx, fixtures.Repositories{
		Customers: s.Customers,
		Orders:    s.Orders,
		Returns:   s.Returns,
	}, now)
}
