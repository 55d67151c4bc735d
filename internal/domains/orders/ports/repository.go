package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	// ListByCustomer returns the customer's orders, newest order date first.
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error)
}
