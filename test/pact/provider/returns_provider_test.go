//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-returns-portal/internal/app/api"
	pacttest "github.com/Apurer/go-gin-returns-portal/test/pact"
)

func TestReturnsProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	server, err := api.NewServer(context.Background(), api.Config{
		Port:             8081,
		TemporalDisabled: true,
		SessionTTL:       time.Hour,
		JWTSecret:        "pact-provider-signing-secret",
		JWTIssuer:        "returns-pact",
		LabelBaseURL:     "https://shipping.homedepot.com/labels/",
		SeedFixtures:     true,
		ReturnWindowDays: 90,
		IdempotencyTTL:   time.Hour,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(server.Close)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	noop := func(bool, models.ProviderState) (models.ProviderStateResponse, error) { return nil, nil }
	verifier := pactprovider.NewVerifier()
	err = verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: ts.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers: models.StateHandlers{
			pacttest.StateSeeded:       noop,
			pacttest.StateOrderMissing: noop,
		},
	})
	require.NoError(t, err)
}
