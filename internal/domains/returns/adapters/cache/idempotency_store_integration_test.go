//go:build integration
// +build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
)

func setupRedisContainer(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisIdempotencyStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client := setupRedisContainer(t)
	store := NewIdempotencyStore(client, "", time.Hour)
	ctx := context.Background()

	missing, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	reserved, err := store.Reserve(ctx, "k1", "h1")
	require.NoError(t, err)
	assert.True(t, reserved.Pending())

	pendingTTL, err := client.TTL(ctx, DefaultKeyPrefix+"k1").Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, pendingTTL, ports.PendingReservationTimeout)

	held, err := store.Reserve(ctx, "k1", "h1")
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	assert.True(t, held.Pending())

	require.NoError(t, store.Complete(ctx, "k1", "RMA-00000001"))
	require.NoError(t, store.Complete(ctx, "k1", "RMA-00000001"))
	require.ErrorIs(t, store.Complete(ctx, "k1", "RMA-00000002"), ports.ErrIdempotencyConflict)

	require.NoError(t, store.Release(ctx, "k1"))
	completed, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, completed)
	assert.Equal(t, "RMA-00000001", completed.RMANumber)
	assert.Equal(t, "h1", completed.RequestHash)

	ttl, err := client.TTL(ctx, DefaultKeyPrefix+"k1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, ports.PendingReservationTimeout)
}

func TestRedisIdempotencyStore_ReleasePending(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	store := NewIdempotencyStore(setupRedisContainer(t), "", time.Hour)
	ctx := context.Background()

	_, err := store.Reserve(ctx, "k2", "h1")
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "k2"))

	gone, err := store.Get(ctx, "k2")
	require.NoError(t, err)
	assert.Nil(t, gone)

	_, err = store.Reserve(ctx, "k2", "h2")
	require.NoError(t, err)
}
