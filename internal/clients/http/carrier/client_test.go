package carrier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterShipment(t *testing.T) {
	var gotPath, gotKey string
	var gotBody ShipmentPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("Idempotency-Key")
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client, err := NewCarrierClient(server.URL+"/v1", nil)
	require.NoError(t, err)

	err = client.RegisterShipment(context.Background(), ShipmentPayload{
		RMANumber:      "RMA-ABC12345",
		TrackingNumber: "1Z0123456789ABCDEF",
		Items:          []ShipmentItem{{SKU: "DW20V-001", Quantity: 1}},
	}, WithIdempotencyKey("RMA-ABC12345"))
	require.NoError(t, err)
	assert.Equal(t, "/v1/shipments/1Z0123456789ABCDEF", gotPath)
	assert.Equal(t, "RMA-ABC12345", gotKey)
	assert.Equal(t, "RMA-ABC12345", gotBody.RMANumber)
}

func TestRegisterShipment_ErrorBodies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Idempotency-Key") != "" {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"already registered"}`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewCarrierClient(server.URL, server.Client())
	require.NoError(t, err)

	err = client.RegisterShipment(context.Background(), ShipmentPayload{TrackingNumber: "1Z1"}, WithIdempotencyKey("k"))
	require.ErrorContains(t, err, "already registered")

	err = client.RegisterShipment(context.Background(), ShipmentPayload{TrackingNumber: "1Z1"})
	require.ErrorContains(t, err, "502")

	err = client.RegisterShipment(context.Background(), ShipmentPayload{})
	require.ErrorContains(t, err, "tracking number is required")
}

func TestNewCarrierClient_RequiresURL(t *testing.T) {
	_, err := NewCarrierClient(" ", nil)
	require.Error(t, err)
}
