package ports

import (
	"context"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/customers/domain"
)

// Service exposes customer identity use cases to adapters.
type Service interface {
	Login(ctx context.Context, customerID string) (*domain.Session, error)
	Logout(ctx context.Context, customerID string)
	Authenticate(ctx context.Context, token string) (string, error)
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
}
