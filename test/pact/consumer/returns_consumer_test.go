//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-returns-portal/internal/clients/http/rma"
	pacttest "github.com/Apurer/go-gin-returns-portal/test/pact"
)

func TestReturnsPortalContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	orderItem := matchers.Map{
		"id":          matchers.Like(1),
		"productName": matchers.Like("DEWALT 20V MAX Cordless Drill"),
		"sku":         matchers.Like("DCD771C2"),
		"quantity":    matchers.Like(1),
		"unitPrice":   matchers.Like(99.0),
		"isLargeItem": matchers.Like(false),
		"isHazardous": matchers.Like(false),
	}

	pact.AddInteraction().
		Given(pacttest.StateSeeded).
		UponReceiving("a login for a known customer").
		WithRequest(http.MethodPost, "/api/customers/login", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{"customerId": matchers.S(pacttest.CustomerID)})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"customerId": matchers.S(pacttest.CustomerID),
				"token":      matchers.Like("eyJhbGciOiJIUzI1NiJ9.e30.signature"),
				"expiresAt":  matchers.Like("2024-06-12T10:00:00Z"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateSeeded).
		UponReceiving("a lookup of an existing order").
		WithRequest(http.MethodGet, "/api/orders/"+pacttest.OrderNumber).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"orderNumber": matchers.S(pacttest.OrderNumber),
				"customerId":  matchers.S(pacttest.CustomerID),
				"orderDate":   matchers.Like("2024-06-12T10:00:00Z"),
				"status":      matchers.Like("DELIVERED"),
				"orderItems":  matchers.ArrayMinLike(orderItem, 1),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a lookup of a missing order").
		WithRequest(http.MethodGet, "/api/orders/"+pacttest.MissingOrder).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateSeeded).
		UponReceiving("a request to track the sample return").
		WithRequest(http.MethodGet, "/api/returns/"+pacttest.SampleRMANumber).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"rmaNumber":     matchers.S(pacttest.SampleRMANumber),
				"orderNumber":   matchers.S(pacttest.OrderNumber),
				"status":        matchers.Term("APPROVED", "PENDING|APPROVED|SHIPPED|RECEIVED|INSPECTED|PROCESSING_REFUND|COMPLETED|REJECTED|CANCELLED"),
				"method":        matchers.S("DROP_OFF_STORE"),
				"requestedDate": matchers.Like("2024-06-12T10:00:00Z"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateSeeded).
		UponReceiving("a chat message asking about tracking").
		WithRequest(http.MethodPost, "/api/chat/message", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{"message": matchers.Like("How do I track my return?")})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"response":         matchers.Like("You can track your return with your RMA number."),
				"sessionId":        matchers.Like("8f14e45f-ceea-4c1b-9b6f-2a1f3c4d5e6f"),
				"intent":           matchers.Like("TRACK_RETURN"),
				"suggestedActions": matchers.EachLike("Track Return", 1),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		host := config.Host
		if host == "" {
			host = "localhost"
		}
		client, err := rma.New(rma.Config{BaseURL: fmt.Sprintf("http://%s:%d", host, config.Port), Timeout: 10 * time.Second}, nil)
		if err != nil {
			return err
		}
		ctx := context.Background()

		session, err := client.Login(ctx, pacttest.CustomerID)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		if session.Token == "" {
			return fmt.Errorf("expected a session token")
		}

		order, err := client.LookupOrder(ctx, pacttest.OrderNumber)
		if err != nil {
			return fmt.Errorf("lookup order: %w", err)
		}
		if len(order.Items) == 0 {
			return fmt.Errorf("expected order items")
		}

		if _, err := client.LookupOrder(ctx, pacttest.MissingOrder); !rma.IsNotFound(err) {
			return fmt.Errorf("expected 404 for %s, got %v", pacttest.MissingOrder, err)
		}

		tracked, err := client.GetReturn(ctx, pacttest.SampleRMANumber)
		if err != nil {
			return fmt.Errorf("get return: %w", err)
		}
		if tracked.RMANumber != pacttest.SampleRMANumber {
			return fmt.Errorf("expected %s, got %s", pacttest.SampleRMANumber, tracked.RMANumber)
		}

		reply, err := client.SendChat(ctx, rma.ChatMessage{Message: "How do I track my return?"})
		if err != nil {
			return fmt.Errorf("send chat: %w", err)
		}
		if reply.SessionID == "" {
			return fmt.Errorf("expected a chat session id")
		}
		return nil
	})
	require.NoError(t, err)
}
