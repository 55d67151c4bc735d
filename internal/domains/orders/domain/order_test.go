package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func sampleItems() []OrderItem {
	return []OrderItem{
		{ID: 1, ProductName: "Drill", Quantity: 1, UnitPrice: decimal.RequireFromString("199.99"), Category: CategoryTools},
		{ID: 2, ProductName: "Lawn Mower", Quantity: 1, UnitPrice: decimal.RequireFromString("449.00"), Category: CategoryGarden, IsLargeItem: true},
		{ID: 3, ProductName: "Paint Thinner", Quantity: 2, UnitPrice: decimal.RequireFromString("12.50"), Category: CategoryPaint, IsHazardous: true},
		{ID: 4, ProductName: "Generator", Quantity: 1, UnitPrice: decimal.RequireFromString("899.00"), Category: CategoryOutdoor, IsLargeItem: true, IsHazardous: true},
		{ID: 5, ProductName: "Screwdriver Set", Quantity: 3, UnitPrice: decimal.RequireFromString("49.99"), Category: CategoryTools},
	}
}

func TestNewOrder_ComputesTotal(t *testing.T) {
	order, err := NewOrder(1, "ORD-1", "CUST001", time.Now(), StatusCompleted, sampleItems())
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("1722.96").Equal(order.TotalAmount), order.TotalAmount.String())
}

func TestNewOrder_RejectsInvalid(t *testing.T) {
	_, err := NewOrder(1, " ", "CUST001", time.Now(), StatusCompleted, sampleItems())
	require.ErrorIs(t, err, ErrInvalidOrderNumber)

	_, err = NewOrder(1, "ORD-1", "", time.Now(), StatusCompleted, sampleItems())
	require.ErrorIs(t, err, ErrInvalidCustomer)

	_, err = NewOrder(1, "ORD-1", "CUST001", time.Now(), "LOST", sampleItems())
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = NewOrder(1, "ORD-1", "CUST001", time.Now(), StatusCompleted, nil)
	require.ErrorIs(t, err, ErrNoItems)

	bad := sampleItems()
	bad[0].Category = "TOYS"
	_, err = NewOrder(1, "ORD-1", "CUST001", time.Now(), StatusCompleted, bad)
	require.ErrorIs(t, err, ErrInvalidItem)
}

func TestEligibleItems_ExcludesFlaggedItems(t *testing.T) {
	order, err := NewOrder(1, "ORD-1", "CUST001", time.Now(), StatusCompleted, sampleItems())
	require.NoError(t, err)

	eligible := order.EligibleItems()
	require.Len(t, eligible, 2)
	for _, item := range eligible {
		require.False(t, item.IsLargeItem)
		require.False(t, item.IsHazardous)
	}
	ids := []int64{eligible[0].ID, eligible[1].ID}
	require.Equal(t, []int64{1, 5}, ids)
}

func TestEligibleItems_FollowsCurrentItems(t *testing.T) {
	order, err := NewOrder(1, "ORD-1", "CUST001", time.Now(), StatusCompleted, sampleItems())
	require.NoError(t, err)
	require.Len(t, order.EligibleItems(), 2)

	order.Items[1].IsLargeItem = false
	require.Len(t, order.EligibleItems(), 3)
}

func TestEligibleItems_AllFlagCombinations(t *testing.T) {
	for _, large := range []bool{false, true} {
		for _, hazardous := range []bool{false, true} {
			item := OrderItem{ID: 1, ProductName: "x", Quantity: 1, Category: CategoryOther, IsLargeItem: large, IsHazardous: hazardous}
			order := &Order{Items: []OrderItem{item}}
			want := !large && !hazardous
			require.Equal(t, want, len(order.EligibleItems()) == 1, "large=%v hazardous=%v", large, hazardous)
		}
	}
}

func TestWithinReturnWindow(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	order := &Order{OrderDate: now.Add(-30 * 24 * time.Hour)}
	require.True(t, order.WithinReturnWindow(now, 0))

	order.OrderDate = now.Add(-91 * 24 * time.Hour)
	require.False(t, order.WithinReturnWindow(now, DefaultReturnWindow))
	require.True(t, order.WithinReturnWindow(now, 120*24*time.Hour))
}

func TestItemLookupAndOwnership(t *testing.T) {
	order, err := NewOrder(1, "ORD-1", "CUST001", time.Now(), StatusCompleted, sampleItems())
	require.NoError(t, err)

	item, ok := order.Item(5)
	require.True(t, ok)
	require.Equal(t, "Screwdriver Set", item.ProductName)
	require.True(t, decimal.RequireFromString("149.97").Equal(item.TotalPrice()))

	_, ok = order.Item(99)
	require.False(t, ok)

	require.True(t, order.BelongsTo(" CUST001 "))
	require.False(t, order.BelongsTo("CUST002"))
}
