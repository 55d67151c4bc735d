package ports

import (
	"context"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/orders/domain"
)

// Service exposes order lookup use cases to adapters.
type Service interface {
	LookupOrder(ctx context.Context, orderNumber string) (*domain.Order, error)
	CustomerOrders(ctx context.Context, customerID string) ([]*domain.Order, error)
}
