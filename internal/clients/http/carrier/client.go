package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
)

// ShipmentPayload announces a warehouse return to the carrier.
type ShipmentPayload struct {
	RMANumber      string         `json:"rmaNumber"`
	OrderNumber    string         `json:"orderNumber"`
	TrackingNumber string         `json:"trackingNumber"`
	LabelURL       string         `json:"labelUrl"`
	Destination    string         `json:"destination"`
	Items          []ShipmentItem `json:"items"`
}

// ShipmentItem is one parcel content line.
type ShipmentItem struct {
	SKU      string `json:"sku"`
	Quantity int32  `json:"quantity"`
}

// Error is the carrier error body.
type Error struct {
	Message *string `json:"message,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// Client talks to the carrier shipment API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// RegisterOption configures RegisterShipment behavior.
type RegisterOption func(*registerOptions)

type registerOptions struct {
	idempotencyKey string
}

// WithIdempotencyKey sets the Idempotency-Key header for the request.
func WithIdempotencyKey(key string) RegisterOption {
	return func(opts *registerOptions) {
		opts.idempotencyKey = strings.TrimSpace(key)
	}
}

// NewCarrierClient instantiates the carrier client with sane defaults.
func NewCarrierClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("carrier base URL is required")
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("build carrier client: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: parsed, httpClient: httpClient}, nil
}

// RegisterShipment PUTs the payload to /shipments/{trackingNumber}.
func (c *Client) RegisterShipment(ctx context.Context, payload ShipmentPayload, optFns ...RegisterOption) error {
	if c == nil || c.baseURL == nil {
		return errors.New("carrier client not configured")
	}
	tracking := strings.TrimSpace(payload.TrackingNumber)
	if tracking == "" {
		return errors.New("tracking number is required")
	}
	var opts registerOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	pathParam, err := runtime.StyleParamWithLocation("simple", false, "trackingNumber", runtime.ParamLocationPath, tracking)
	if err != nil {
		return err
	}
	target, err := c.baseURL.Parse("shipments/" + pathParam)
	if err != nil {
		return err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if opts.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call carrier API: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read carrier response: %w", err)
	}

	status := resp.StatusCode
	switch {
	case status == http.StatusOK || status == http.StatusCreated || status == http.StatusAccepted:
		return nil
	case status == http.StatusConflict:
		return fmt.Errorf("carrier API idempotency conflict: %s", errorMessage(raw, resp.Status))
	case status >= http.StatusBadRequest:
		return fmt.Errorf("carrier API error: %s", errorMessage(raw, resp.Status))
	default:
		return fmt.Errorf("carrier API unexpected status: %s", resp.Status)
	}
}

func errorMessage(raw []byte, fallback string) string {
	var body Error
	if len(raw) == 0 || json.Unmarshal(raw, &body) != nil {
		return fallback
	}
	if body.Message != nil {
		if msg := strings.TrimSpace(*body.Message); msg != "" {
			return msg
		}
	}
	if body.Status != nil {
		if msg := strings.TrimSpace(*body.Status); msg != "" {
			return msg
		}
	}
	return fallback
}
