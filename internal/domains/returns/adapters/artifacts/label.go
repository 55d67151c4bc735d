package artifacts

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
)

// DefaultLabelBaseURL hosts the generated label PDFs.
const DefaultLabelBaseURL = "https://shipping.homedepot.com/labels/"

// WarehouseAddress is where warehouse returns are shipped.
const WarehouseAddress = "Home Depot Returns Warehouse\n1234 Returns Blvd\nAtlanta, GA 30309"

var _ ports.ShippingLabeler = (*ShippingLabeler)(nil)

// ShippingLabeler issues tracking numbers and label URLs for warehouse returns.
type ShippingLabeler struct {
	baseURL      string
	nextTracking func() string
}

// NewShippingLabeler validates baseURL; an empty value selects DefaultLabelBaseURL.
func NewShippingLabeler(baseURL string) (*ShippingLabeler, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultLabelBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse label base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("label base url must be absolute: %q", baseURL)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &ShippingLabeler{baseURL: baseURL, nextTracking: domain.NewTrackingNumber}, nil
}

func (l *ShippingLabeler) Issue(_ context.Context, request *domain.ReturnRequest) (ports.ShippingLabel, error) {
	if request == nil {
		return ports.ShippingLabel{}, errors.New("return request is nil")
	}
	tracking := l.nextTracking()
	return ports.ShippingLabel{
		TrackingNumber:   tracking,
		LabelURL:         l.baseURL + tracking + ".pdf",
		WarehouseAddress: WarehouseAddress,
	}, nil
}
