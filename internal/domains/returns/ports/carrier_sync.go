package ports

import (
	"context"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
)

// CarrierSync registers warehouse shipments with the carrier.
type CarrierSync interface {
	RegisterShipment(ctx context.Context, request *domain.ReturnRequest) error
}
