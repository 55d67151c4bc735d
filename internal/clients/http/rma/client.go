package rma

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

	"github.com/oapi-codegen/runtime"

	sharederrors "github.com/Apurer/go-gin-returns-portal/internal/shared/errors"
)

// IdempotencyKeyHeader carries the optional replay key of a return submission.
const IdempotencyKeyHeader = "Idempotency-Key"

// Client calls the returns API on behalf of the portal.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New builds a client for cfg. A nil httpClient gets one with cfg.Timeout.
func New(cfg Config, httpClient *http.Client) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("build returns client: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{baseURL: parsed, httpClient: httpClient}, nil
}

// Login opens a session for customerID.
func (c *Client) Login(ctx context.Context, customerID string) (*Session, error) {
	var session Session
	body := map[string]string{"customerId": customerID}
	if err := c.do(ctx, http.MethodPost, "api/customers/login", nil, nil, body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout ends the session on the server.
func (c *Client) Logout(ctx context.Context, session Session) error {
	return c.do(ctx, http.MethodPost, "api/customers/logout", &session, nil, nil, nil)
}

// LookupOrder fetches an order by its number.
func (c *Client) LookupOrder(ctx context.Context, orderNumber string) (*Order, error) {
	path, err := pathWithParam("api/orders/", "orderNumber", orderNumber, "")
	if err != nil {
		return nil, err
	}
	var order Order
	if err := c.do(ctx, http.MethodGet, path, nil, nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateReturn submits a return for the session's customer.
func (c *Client) CreateReturn(ctx context.Context, session Session, request ReturnRequest) (*ReturnResponse, error) {
	return c.CreateReturnWithKey(ctx, session, request, "")
}

// CreateReturnWithKey submits a return; a non-empty key makes resubmission replay the same RMA.
func (c *Client) CreateReturnWithKey(ctx context.Context, session Session, request ReturnRequest, idempotencyKey string) (*ReturnResponse, error) {
	var headers http.Header
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		headers = http.Header{IdempotencyKeyHeader: []string{key}}
	}
	var response ReturnResponse
	if err := c.do(ctx, http.MethodPost, "api/returns", &session, headers, request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetReturn fetches an RMA by number.
func (c *Client) GetReturn(ctx context.Context, rmaNumber string) (*ReturnResponse, error) {
	path, err := pathWithParam("api/returns/", "rmaNumber", rmaNumber, "")
	if err != nil {
		return nil, err
	}
	var response ReturnResponse
	if err := c.do(ctx, http.MethodGet, path, nil, nil, nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// CustomerReturns lists the session customer's returns, newest first.
func (c *Client) CustomerReturns(ctx context.Context, session Session) ([]ReturnResponse, error) {
	path, err := pathWithParam("api/customers/", "customerId", session.CustomerID, "/returns")
	if err != nil {
		return nil, err
	}
	var responses []ReturnResponse
	if err := c.do(ctx, http.MethodGet, path, &session, nil, nil, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

// SendChat posts a message to the assistant.
func (c *Client) SendChat(ctx context.Context, message ChatMessage) (*ChatReply, error) {
	var reply ChatReply
	if err := c.do(ctx, http.MethodPost, "api/chat/message", nil, nil, message, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// ClearChat drops the assistant's transcript for sessionID.
func (c *Client) ClearChat(ctx context.Context, sessionID string) error {
	path, err := pathWithParam("api/chat/session/", "sessionId", sessionID, "")
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, nil)
}

func pathWithParam(prefix, name, value, suffix string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	param, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		return "", err
	}
	return prefix + param + suffix, nil
}

func (c *Client) do(ctx context.Context, method, path string, session *Session, headers http.Header, in, out any) error {
	if c == nil || c.baseURL == nil {
		return errors.New("returns client not configured")
	}
	target, err := c.baseURL.Parse(path)
	if err != nil {
		return err
	}
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if session != nil && session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call returns API: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read returns API response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{StatusCode: resp.StatusCode, Problem: sharederrors.ParseProblem(resp.StatusCode, raw)}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode returns API response: %w", err)
	}
	return nil
}
