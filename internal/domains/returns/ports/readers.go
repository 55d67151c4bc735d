package ports

import (
	"context"

	customerdomain "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/domain"
	orderdomain "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/domain"
)

// OrderReader resolves orders owned by the orders context.
type OrderReader interface {
	GetByOrderNumber(ctx context.Context, orderNumber string) (*orderdomain.Order, error)
}

// CustomerReader resolves customers owned by the customers context.
type CustomerReader interface {
	GetByID(ctx context.Context, id string) (*customerdomain.Customer, error)
}
