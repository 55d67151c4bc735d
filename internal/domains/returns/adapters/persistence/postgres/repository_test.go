package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection to :memory: would open its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func sampleRequest(rma, customerID string, requested time.Time) *domain.ReturnRequest {
	processed := requested.Add(time.Second)
	return &domain.ReturnRequest{
		RMANumber:     rma,
		OrderNumber:   "ORD-2024-001",
		CustomerID:    customerID,
		Reason:        domain.ReasonDefective,
		Method:        domain.MethodDropOffStore,
		Status:        domain.StatusApproved,
		QRCodeData:    "data:image/png;base64,AAAA",
		RequestedDate: requested,
		ProcessedDate: &processed,
		Items: []domain.Item{
			{OrderItemID: 1, ProductName: "DeWalt Cordless Drill", SKU: "DW20V-001", Quantity: 1, Condition: "Good", Status: domain.ItemStatusPending},
			{OrderItemID: 2, ProductName: "Screwdriver Set", SKU: "SS-001", Quantity: 1, Condition: "Good", Status: domain.ItemStatusPending},
		},
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleRequest("RMA-00000001", "CUST001", time.Now().UTC()))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, created.Status)
	require.Len(t, created.Items, 2)
	assert.Equal(t, "DeWalt Cordless Drill", created.Items[0].ProductName)
	require.NotNil(t, created.ProcessedDate)
	assert.Nil(t, created.CompletedDate)

	_, err = repo.Create(ctx, sampleRequest("RMA-00000001", "CUST001", time.Now().UTC()))
	require.ErrorIs(t, err, ports.ErrDuplicateRMA)

	_, err = repo.GetByRMA(ctx, "RMA-FFFFFFFF")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_UpdateStatusAndItems(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleRequest("RMA-00000002", "CUST001", time.Now().UTC()))
	require.NoError(t, err)
	require.NoError(t, created.UpdateStatus(domain.StatusCompleted, time.Now().UTC()))

	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedDate)
	for _, item := range updated.Items {
		assert.Equal(t, domain.ItemStatusRefunded, item.Status)
	}

	missing := sampleRequest("RMA-0000FFFF", "CUST001", time.Now())
	_, err = repo.Update(ctx, missing)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListByCustomerNewestFirst(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := repo.Create(ctx, sampleRequest("RMA-00000010", "CUST001", now.Add(-48*time.Hour)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, sampleRequest("RMA-00000011", "CUST001", now))
	require.NoError(t, err)
	_, err = repo.Create(ctx, sampleRequest("RMA-00000012", "CUST002", now))
	require.NoError(t, err)

	list, err := repo.ListByCustomer(ctx, "CUST001")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "RMA-00000011", list[0].RMANumber)
	assert.Equal(t, "RMA-00000010", list[1].RMANumber)

	empty, err := repo.ListByCustomer(ctx, "CUST003")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestIdempotencyStore_ReserveCompleteRelease(t *testing.T) {
	store := NewIdempotencyStore(setupSQLite(t))
	ctx := context.Background()

	missing, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	reserved, err := store.Reserve(ctx, "k1", "h1")
	require.NoError(t, err)
	assert.True(t, reserved.Pending())

	held, err := store.Reserve(ctx, "k1", "h1")
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	require.NotNil(t, held)
	assert.True(t, held.Pending())

	require.NoError(t, store.Complete(ctx, "k1", "RMA-00000001"))
	require.NoError(t, store.Complete(ctx, "k1", "RMA-00000001"))
	require.ErrorIs(t, store.Complete(ctx, "k1", "RMA-00000002"), ports.ErrIdempotencyConflict)

	require.NoError(t, store.Release(ctx, "k1"))
	completed, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, completed)
	assert.Equal(t, "RMA-00000001", completed.RMANumber)

	require.Error(t, store.Complete(ctx, "unknown", "RMA-00000003"))
}

func TestIdempotencyStore_ReleasedAndAbandonedReservations(t *testing.T) {
	store := NewIdempotencyStore(setupSQLite(t))
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.WithClock(func() time.Time { return now })

	_, err := store.Reserve(ctx, "released", "h1")
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "released"))
	_, err = store.Reserve(ctx, "released", "h2")
	require.NoError(t, err)

	_, err = store.Reserve(ctx, "stale", "h1")
	require.NoError(t, err)
	now = now.Add(ports.PendingReservationTimeout + time.Second)
	claimed, err := store.Reserve(ctx, "stale", "h2")
	require.NoError(t, err)
	assert.Equal(t, "h2", claimed.RequestHash)

	stored, err := store.Get(ctx, "stale")
	require.NoError(t, err)
	assert.Equal(t, "h2", stored.RequestHash)
}
