package carrier

import (
	"context"
	"errors"
	"net/http"
	"time"

	carrierclient "github.com/Apurer/go-gin-returns-portal/internal/clients/http/carrier"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
)

// Syncer implements the outbound carrier registration port.
type Syncer struct {
	client *carrierclient.Client
}

// NewSyncer wires a carrier HTTP client into a sync adapter.
func NewSyncer(client *carrierclient.Client) *Syncer {
	return &Syncer{client: client}
}

// RegisterShipment announces a warehouse return; other methods are ignored.
// The RMA number doubles as the idempotency key so activity retries are safe.
func (s *Syncer) RegisterShipment(ctx context.Context, request *domain.ReturnRequest) error {
	if s == nil || s.client == nil {
		return errors.New("carrier syncer not configured")
	}
	if request == nil {
		return errors.New("return request is nil")
	}
	if request.Method != domain.MethodShipToWarehouse {
		return nil
	}
	return s.client.RegisterShipment(ctx, ToPayload(request), carrierclient.WithIdempotencyKey(request.RMANumber))
}

// ToPayload maps an RMA to the carrier shipment payload.
func ToPayload(request *domain.ReturnRequest) carrierclient.ShipmentPayload {
	payload := carrierclient.ShipmentPayload{
		RMANumber:      request.RMANumber,
		OrderNumber:    request.OrderNumber,
		TrackingNumber: request.TrackingNumber,
		LabelURL:       request.ShippingLabelURL,
		Destination:    request.WarehouseAddress,
		Items:          make([]carrierclient.ShipmentItem, 0, len(request.Items)),
	}
	for _, item := range request.Items {
		payload.Items = append(payload.Items, carrierclient.ShipmentItem{SKU: item.SKU, Quantity: item.Quantity})
	}
	return payload
}

var _ ports.CarrierSync = (*Syncer)(nil)

// Dial builds a Syncer for the carrier API at baseURL.
func Dial(baseURL string, timeout time.Duration) (*Syncer, error) {
	client, err := carrierclient.NewCarrierClient(baseURL, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, err
	}
	return NewSyncer(client), nil
}
