package stores

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-returns-portal/internal/platform/fixtures"
	"github.com/Apurer/go-gin-returns-portal/internal/platform/migrations"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migrations.Run(db))
	return db
}

func TestNew_MemoryWhenNothingConfigured(t *testing.T) {
	set := New(nil, nil, Options{})

	assert.Equal(t, BackendMemory, set.Aggregates)
	assert.Equal(t, BackendMemory, set.IdempotencyKeys)
	assert.Equal(t, BackendMemory, set.ChatTranscripts)
	assert.Nil(t, set.Purger)

	ctx := context.Background()
	require.NoError(t, set.Seed(ctx, time.Now()))
	sample, err := set.Returns.GetByRMA(ctx, fixtures.SampleRMANumber)
	require.NoError(t, err)
	assert.Equal(t, "CUST001", sample.CustomerID)
}

func TestNew_RelationalStoresWithDatabase(t *testing.T) {
	set := New(openSQLite(t), nil, Options{})

	assert.Equal(t, BackendPostgres, set.Aggregates)
	assert.Equal(t, BackendPostgres, set.IdempotencyKeys)
	assert.Equal(t, BackendMemory, set.ChatTranscripts)
	require.NotNil(t, set.Purger)

	ctx := context.Background()
	now := time.Now()
	require.NoError(t, set.Seed(ctx, now))
	require.NoError(t, set.Seed(ctx, now))

	order, err := set.Orders.GetByOrderNumber(ctx, "ORD-2024-001")
	require.NoError(t, err)
	assert.Len(t, order.Items, 2)

	purged, err := set.Purger.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, purged)
}

func TestNew_RedisTakesKeysAndTranscripts(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = rdb.Close() })

	set := New(nil, rdb, Options{IdempotencyTTL: time.Hour, ChatTranscriptTTL: time.Hour})

	assert.Equal(t, BackendMemory, set.Aggregates)
	assert.Equal(t, BackendRedis, set.IdempotencyKeys)
	assert.Equal(t, BackendRedis, set.ChatTranscripts)
}
