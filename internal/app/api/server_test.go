package api

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-returns-portal/internal/app/stores"
	"github.com/Apurer/go-gin-returns-portal/internal/clients/http/rma"
	returndomain "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/platform/fixtures"
	"github.com/Apurer/go-gin-returns-portal/internal/portal"
)

func testConfig() Config {
	return Config{
		Port:              8081,
		TemporalDisabled:  true,
		SessionTTL:        time.Hour,
		JWTSecret:         "e2e-portal-signing-secret",
		JWTIssuer:         "returns-e2e",
		LabelBaseURL:      "https://shipping.homedepot.com/labels/",
		SeedFixtures:      true,
		ReturnWindowDays:  90,
		IdempotencyTTL:    time.Hour,
		ChatTranscriptTTL: time.Hour,
		ShutdownTimeout:   time.Second,
	}
}

func newPortalClient(t *testing.T) *rma.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server, err := NewServer(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(server.Close)
	assert.Equal(t, stores.BackendMemory, server.Stores.Aggregates)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	client, err := rma.New(rma.Config{BaseURL: ts.URL, Timeout: 5 * time.Second}, ts.Client())
	require.NoError(t, err)
	return client
}

func login(t *testing.T, client *rma.Client, customerID string) *rma.Session {
	t.Helper()
	view := portal.NewLoginView(client)
	t.Cleanup(view.Close)
	session, err := view.Login(context.Background(), customerID)
	require.NoError(t, err)
	require.NotNil(t, session)
	return session
}

func startWizard(t *testing.T, client *rma.Client, session *rma.Session, orderNumber string) *portal.Wizard {
	t.Helper()
	lookup := portal.NewOrderLookupView(client)
	t.Cleanup(lookup.Close)
	_, err := lookup.Lookup(context.Background(), orderNumber)
	require.NoError(t, err)
	wizard, err := lookup.StartReturn(session)
	require.NoError(t, err)
	t.Cleanup(wizard.Close)
	return wizard
}

func submit(t *testing.T, wizard *portal.Wizard, reason returndomain.Reason, method returndomain.Method, items ...int64) {
	t.Helper()
	for _, id := range items {
		require.NoError(t, wizard.Select(id))
	}
	require.NoError(t, wizard.Next())
	require.NoError(t, wizard.SetReason(reason))
	require.NoError(t, wizard.SetMethod(method))
	require.NoError(t, wizard.Next())
	require.Equal(t, portal.StepReviewAndSubmit, wizard.Step())
	require.NoError(t, wizard.Submit(context.Background()))
	require.Equal(t, portal.StepSuccess, wizard.Step())
}

func TestPortal_DropOffReturnShowsQRCode(t *testing.T) {
	client := newPortalClient(t)
	session := login(t, client, "CUST001")
	wizard := startWizard(t, client, session, "ORD-2024-001")

	assert.Len(t, wizard.EligibleItems(), 2)
	submit(t, wizard, returndomain.ReasonDefective, returndomain.MethodDropOffStore, 1, 2)

	response := wizard.Response()
	require.NotNil(t, response)
	assert.True(t, strings.HasPrefix(response.RMANumber, "RMA-"))
	assert.Equal(t, returndomain.StatusApproved, response.Status)
	assert.Len(t, response.ReturnItems, 2)

	artifacts := wizard.Artifacts()
	require.Len(t, artifacts, 1)
	assert.Equal(t, portal.ArtifactQRCode, artifacts[0].Kind)
	assert.True(t, strings.HasPrefix(artifacts[0].Value, "data:image/png;base64,"))
}

func TestPortal_WarehouseReturnShowsLabel(t *testing.T) {
	client := newPortalClient(t)
	session := login(t, client, "CUST001")
	wizard := startWizard(t, client, session, "ORD-2024-001")

	submit(t, wizard, returndomain.ReasonChangedMind, returndomain.MethodShipToWarehouse, 2)

	artifacts := wizard.Artifacts()
	require.Len(t, artifacts, 1)
	assert.Equal(t, portal.ArtifactShippingLabel, artifacts[0].Kind)
	assert.True(t, strings.HasPrefix(artifacts[0].Value, "https://shipping.homedepot.com/labels/"))
	assert.NotEmpty(t, artifacts[0].TrackingNumber)

	dashboard := portal.NewDashboardView(client)
	t.Cleanup(dashboard.Close)
	returns, err := dashboard.Load(context.Background(), session)
	require.NoError(t, err)
	var rmas []string
	for _, r := range returns {
		rmas = append(rmas, r.RMANumber)
	}
	assert.Contains(t, rmas, fixtures.SampleRMANumber)
	assert.Contains(t, rmas, wizard.Response().RMANumber)
}

func TestPortal_UnknownOrder(t *testing.T) {
	client := newPortalClient(t)
	lookup := portal.NewOrderLookupView(client)
	t.Cleanup(lookup.Close)

	_, err := lookup.Lookup(context.Background(), "ORD-9999-999")
	require.Error(t, err)
	assert.True(t, rma.IsNotFound(err))
	assert.Equal(t, portal.MsgOrderNotFound, lookup.Message())
	assert.Nil(t, lookup.Order())
}

func TestPortal_TrackSampleReturn(t *testing.T) {
	client := newPortalClient(t)
	track := portal.NewTrackView(client)
	t.Cleanup(track.Close)

	tracked, err := track.Track(context.Background(), "rma-abc12345")
	require.NoError(t, err)
	assert.Equal(t, returndomain.StatusApproved, tracked.Return.Status)
	require.Len(t, tracked.Timeline, len(returndomain.Progression))
	assert.True(t, tracked.Timeline[0].Completed)
	assert.True(t, tracked.Timeline[1].Completed)
	assert.False(t, tracked.Timeline[2].Completed)
	assert.Equal(t, "Return Approved", tracked.Timeline[1].Label)
}

func TestPortal_LoginRejectsUnknownCustomer(t *testing.T) {
	client := newPortalClient(t)
	view := portal.NewLoginView(client)
	t.Cleanup(view.Close)

	_, err := view.Login(context.Background(), "CUST404")
	require.Error(t, err)
	assert.Equal(t, portal.MsgLoginFailed, view.Message())
	assert.Nil(t, view.Session())
}

func TestPortal_ChatWidget(t *testing.T) {
	client := newPortalClient(t)
	session := login(t, client, "CUST001")
	widget := portal.NewChatWidget(client, session)
	t.Cleanup(widget.Close)
	ctx := context.Background()

	require.NoError(t, widget.Open(ctx))
	require.Len(t, widget.Bubbles(), 1)
	assert.False(t, widget.Bubbles()[0].FromCustomer)

	reply, err := widget.Send(ctx, "How do I track my return?")
	require.NoError(t, err)
	assert.NotEmpty(t, reply.Text)
	assert.NotEmpty(t, widget.SessionID())
	assert.Len(t, widget.Bubbles(), 3)

	require.NoError(t, widget.Clear(ctx))
	assert.Len(t, widget.Bubbles(), 1)
}

func TestServer_PurgeSessionsReturnsWithoutDatabase(t *testing.T) {
	server, err := NewServer(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(server.Close)

	done := make(chan struct{})
	go func() {
		server.PurgeSessions(context.Background(), time.Millisecond)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("purge loop should not start without a session purger")
	}
}
