package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/customers/domain"
)

var ErrNotFound = errors.New("customer not found")
var ErrInvalidCredentials = errors.New("invalid customer id")

type Repository interface {
	Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}
