package portal

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/Apurer/go-gin-returns-portal/internal/clients/http/rma"
	returndomain "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
)

var errBackend = errors.New("backend unavailable")

// fakeCollaborator serves canned data and records the last submission.
type fakeCollaborator struct {
	mu         sync.Mutex
	orders     map[string]rma.Order
	returns    map[string]rma.ReturnResponse
	createErr  error
	lookupErr  error
	lastCreate *rma.ReturnRequest
	lastAuthed string
	creates    int
	loggedOut  bool
	block      chan struct{}
}

func newFakeCollaborator() *fakeCollaborator {
	return &fakeCollaborator{
		orders: map[string]rma.Order{
			"ORD-2024-001": {
				OrderNumber: "ORD-2024-001",
				CustomerID:  "CUST001",
				Items: []rma.OrderItem{
					{ID: 1, ProductName: "Cordless Drill", Quantity: 1},
					{ID: 2, ProductName: "Screwdriver Set", Quantity: 3},
					{ID: 3, ProductName: "Lawn Mower", Quantity: 1, IsLargeItem: true},
					{ID: 4, ProductName: "Paint Thinner", Quantity: 2, IsHazardous: true},
				},
			},
		},
		returns: map[string]rma.ReturnResponse{
			"RMA-ABC12345": {RMANumber: "RMA-ABC12345", Status: returndomain.StatusApproved, Method: returndomain.MethodDropOffStore},
		},
	}
}

func notFound() error {
	return &rma.APIError{StatusCode: http.StatusNotFound}
}

func (f *fakeCollaborator) wait(ctx context.Context) error {
	if f.block == nil {
		return nil
	}
	select {
	case <-f.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeCollaborator) Login(ctx context.Context, customerID string) (*rma.Session, error) {
	if !strings.HasPrefix(customerID, "CUST") {
		return nil, notFound()
	}
	return &rma.Session{CustomerID: customerID, Token: "token-" + customerID}, nil
}

func (f *fakeCollaborator) Logout(ctx context.Context, session rma.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedOut = true
	return nil
}

func (f *fakeCollaborator) LookupOrder(ctx context.Context, orderNumber string) (*rma.Order, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	order, ok := f.orders[orderNumber]
	if !ok {
		return nil, notFound()
	}
	return &order, nil
}

func (f *fakeCollaborator) CreateReturn(ctx context.Context, session rma.Session, request rma.ReturnRequest) (*rma.ReturnResponse, error) {
	f.mu.Lock()
	f.creates++
	f.lastCreate = &request
	f.lastAuthed = session.CustomerID
	f.mu.Unlock()
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	response := rma.ReturnResponse{
		RMANumber:   "RMA-1A2B3C4D",
		OrderNumber: request.OrderNumber,
		Reason:      request.Reason,
		Method:      request.Method,
		Status:      returndomain.StatusPending,
	}
	switch request.Method {
	case returndomain.MethodDropOffStore:
		response.QRCodeData = "data:image/png;base64,AAAA"
	case returndomain.MethodShipToWarehouse:
		response.ShippingLabelURL = "https://labels.example.com/RMA-1A2B3C4D"
		response.TrackingNumber = "1Z999AA10123456784"
	}
	return &response, nil
}

func (f *fakeCollaborator) GetReturn(ctx context.Context, rmaNumber string) (*rma.ReturnResponse, error) {
	response, ok := f.returns[rmaNumber]
	if !ok {
		return nil, notFound()
	}
	return &response, nil
}

func (f *fakeCollaborator) CustomerReturns(ctx context.Context, session rma.Session) ([]rma.ReturnResponse, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return []rma.ReturnResponse{f.returns["RMA-ABC12345"]}, nil
}

func (f *fakeCollaborator) submissions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates
}
