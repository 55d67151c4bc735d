package ports

import (
	"context"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
)

// QRCodeGenerator renders the store drop-off QR code for a request.
type QRCodeGenerator interface {
	Generate(ctx context.Context, request *domain.ReturnRequest) (string, error)
}

// ShippingLabel is what a warehouse return needs to travel.
type ShippingLabel struct {
	TrackingNumber   string
	LabelURL         string
	WarehouseAddress string
}

// ShippingLabeler issues a label for a warehouse return.
type ShippingLabeler interface {
	Issue(ctx context.Context, request *domain.ReturnRequest) (ShippingLabel, error)
}
