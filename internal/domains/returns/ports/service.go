package ports

import (
	"context"

	returntypes "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application/types"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
)

// Service defines the returns use cases exposed to adapters (inbound/driving port).
type Service interface {
	CreateReturn(ctx context.Context, input returntypes.CreateReturnInput) (*domain.ReturnRequest, error)
	GetReturn(ctx context.Context, rmaNumber string) (*domain.ReturnRequest, error)
	CustomerReturns(ctx context.Context, customerID string) ([]*domain.ReturnRequest, error)
	UpdateStatus(ctx context.Context, input returntypes.UpdateStatusInput) (*domain.ReturnRequest, error)
}
