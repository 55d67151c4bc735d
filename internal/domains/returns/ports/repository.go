package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
)

var ErrNotFound = errors.New("return request not found")

// ErrDuplicateRMA is returned by Create when the RMA number is already taken.
var ErrDuplicateRMA = errors.New("rma number already exists")

type Repository interface {
	// Create inserts a new request and fails with ErrDuplicateRMA on collision.
	Create(ctx context.Context, request *domain.ReturnRequest) (*domain.ReturnRequest, error)
	Update(ctx context.Context, request *domain.ReturnRequest) (*domain.ReturnRequest, error)
	GetByRMA(ctx context.Context, rmaNumber string) (*domain.ReturnRequest, error)
	// ListByCustomer returns the customer's requests, newest request first.
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.ReturnRequest, error)
}
