package portal

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/Apurer/go-gin-returns-portal/internal/clients/http/rma"
)

// Messages shown by the fetch-and-render views.
const (
	MsgCustomerIDRequired = "Please enter your customer ID"
	MsgLoginFailed        = "Invalid customer ID. Please try again."
	MsgOrderRequired      = "Please enter an order number"
	MsgOrderNotFound      = "Order not found. Please check your order number and try again."
	MsgLookupFailed       = "Failed to lookup order. Please try again."
	MsgRMARequired        = "Please enter an RMA number"
	MsgReturnNotFound     = "Return request not found. Please check your RMA number and try again."
	MsgTrackFailed        = "Failed to load return request. Please try again."
	MsgDashboardFailed    = "Failed to load returns"
)

var (
	ErrInputRequired = errors.New("input is required")
	ErrNoOrder       = errors.New("no order has been looked up")
)

// fetch runs one guarded request and hands its outcome to apply unless the
// view was closed in the meantime.
func fetch[T any](ctx context.Context, guard *inflight, call func(context.Context) (T, error), apply func(T, error)) (T, error) {
	var zero T
	ctx, done, err := guard.begin(ctx)
	if err != nil {
		return zero, err
	}
	defer done()
	result, err := call(ctx)
	if commitErr := guard.commit(func() { apply(result, err) }); commitErr != nil {
		return zero, commitErr
	}
	return result, err
}

// LoginView trades a customer id for a Session.
type LoginView struct {
	collaborator Collaborator
	guard        *inflight
	logger       *slog.Logger

	mu      sync.RWMutex
	message string
	session *rma.Session
}

// NewLoginView builds a login view backed by c.
func NewLoginView(c Collaborator, opts ...Option) *LoginView {
	o := newOptions(opts)
	return &LoginView{collaborator: c, guard: newInflight(), logger: o.logger}
}

// Login opens a session. The returned Session must be passed to every later view.
func (v *LoginView) Login(ctx context.Context, customerID string) (*rma.Session, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		v.setMessage(MsgCustomerIDRequired)
		return nil, ErrInputRequired
	}
	return fetch(ctx, v.guard, func(ctx context.Context) (*rma.Session, error) {
		return v.collaborator.Login(ctx, customerID)
	}, func(session *rma.Session, err error) {
		v.mu.Lock()
		defer v.mu.Unlock()
		if err != nil {
			v.logger.WarnContext(ctx, "login failed", slog.String("customerId", customerID), slog.String("error", err.Error()))
			v.message = MsgLoginFailed
			v.session = nil
			return
		}
		v.message = ""
		v.session = session
	})
}

func (v *LoginView) setMessage(message string) {
	v.mu.Lock()
	v.message = message
	v.mu.Unlock()
}

// Session returns the session opened by the last successful Login, or nil.
func (v *LoginView) Session() *rma.Session {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.session
}

// Message returns the error shown under the login form.
func (v *LoginView) Message() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.message
}

// Busy reports whether a login is outstanding.
func (v *LoginView) Busy() bool { return v.guard.Busy() }

// Close cancels an outstanding login.
func (v *LoginView) Close() { v.guard.Close() }

// OrderLookupView fetches an order and starts a return for it.
type OrderLookupView struct {
	collaborator Collaborator
	guard        *inflight
	opts         []Option
	logger       *slog.Logger

	mu      sync.RWMutex
	message string
	order   *rma.Order
}

// NewOrderLookupView builds an order lookup view backed by c.
func NewOrderLookupView(c Collaborator, opts ...Option) *OrderLookupView {
	o := newOptions(opts)
	return &OrderLookupView{collaborator: c, guard: newInflight(), opts: opts, logger: o.logger}
}

// Lookup fetches orderNumber. A miss clears the previously rendered order.
func (v *OrderLookupView) Lookup(ctx context.Context, orderNumber string) (*rma.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		v.mu.Lock()
		v.message = MsgOrderRequired
		v.mu.Unlock()
		return nil, ErrInputRequired
	}
	return fetch(ctx, v.guard, func(ctx context.Context) (*rma.Order, error) {
		return v.collaborator.LookupOrder(ctx, orderNumber)
	}, func(order *rma.Order, err error) {
		v.mu.Lock()
		defer v.mu.Unlock()
		if err != nil {
			v.order = nil
			if rma.IsNotFound(err) {
				v.message = MsgOrderNotFound
				return
			}
			v.logger.WarnContext(ctx, "order lookup failed", slog.String("orderNumber", orderNumber), slog.String("error", err.Error()))
			v.message = MsgLookupFailed
			return
		}
		v.message = ""
		v.order = order
	})
}

// StartReturn opens the return wizard for the looked-up order.
func (v *OrderLookupView) StartReturn(session *rma.Session) (*Wizard, error) {
	if session == nil {
		return nil, ErrNoSession
	}
	v.mu.RLock()
	order := v.order
	v.mu.RUnlock()
	if order == nil {
		return nil, ErrNoOrder
	}
	return NewWizard(v.collaborator, session, *order, v.opts...)
}

// Order returns the last order found, or nil.
func (v *OrderLookupView) Order() *rma.Order {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.order
}

// Message returns the lookup error shown to the shopper.
func (v *OrderLookupView) Message() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.message
}

// Busy reports whether a lookup is outstanding.
func (v *OrderLookupView) Busy() bool { return v.guard.Busy() }

// Close cancels an outstanding lookup.
func (v *OrderLookupView) Close() { v.guard.Close() }

// Tracked is a return with its rendered timeline.
type Tracked struct {
	Return   rma.ReturnResponse
	Timeline []TimelineStep
}

// TrackView looks up a return by RMA number.
type TrackView struct {
	collaborator Collaborator
	guard        *inflight
	logger       *slog.Logger

	mu      sync.RWMutex
	message string
	tracked *Tracked
}

// NewTrackView builds a tracking view backed by c.
func NewTrackView(c Collaborator, opts ...Option) *TrackView {
	o := newOptions(opts)
	return &TrackView{collaborator: c, guard: newInflight(), logger: o.logger}
}

// Track fetches rmaNumber and lays out its timeline.
func (v *TrackView) Track(ctx context.Context, rmaNumber string) (*Tracked, error) {
	rmaNumber = strings.ToUpper(strings.TrimSpace(rmaNumber))
	if rmaNumber == "" {
		v.mu.Lock()
		v.message = MsgRMARequired
		v.mu.Unlock()
		return nil, ErrInputRequired
	}
	return fetch(ctx, v.guard, func(ctx context.Context) (*Tracked, error) {
		response, err := v.collaborator.GetReturn(ctx, rmaNumber)
		if err != nil {
			return nil, err
		}
		return &Tracked{Return: *response, Timeline: Timeline(response.Status)}, nil
	}, func(tracked *Tracked, err error) {
		v.mu.Lock()
		defer v.mu.Unlock()
		if err != nil {
			v.tracked = nil
			if rma.IsNotFound(err) {
				v.message = MsgReturnNotFound
				return
			}
			v.logger.WarnContext(ctx, "return tracking failed", slog.String("rmaNumber", rmaNumber), slog.String("error", err.Error()))
			v.message = MsgTrackFailed
			return
		}
		v.message = ""
		v.tracked = tracked
	})
}

// Tracked returns the last return found with its timeline, or nil.
func (v *TrackView) Tracked() *Tracked {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.tracked
}

// Message returns the tracking error shown to the shopper.
func (v *TrackView) Message() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.message
}

// Busy reports whether a lookup is outstanding.
func (v *TrackView) Busy() bool { return v.guard.Busy() }

// Close cancels an outstanding lookup.
func (v *TrackView) Close() { v.guard.Close() }

// DashboardView lists the returns of the logged-in customer.
type DashboardView struct {
	collaborator Collaborator
	guard        *inflight
	logger       *slog.Logger

	mu      sync.RWMutex
	message string
	returns []rma.ReturnResponse
}

// NewDashboardView builds a dashboard backed by c.
func NewDashboardView(c Collaborator, opts ...Option) *DashboardView {
	o := newOptions(opts)
	return &DashboardView{collaborator: c, guard: newInflight(), logger: o.logger}
}

// Load fetches the customer's returns. Without a session the shopper belongs on the login view.
func (v *DashboardView) Load(ctx context.Context, session *rma.Session) ([]rma.ReturnResponse, error) {
	if session == nil || strings.TrimSpace(session.CustomerID) == "" {
		return nil, ErrNoSession
	}
	return fetch(ctx, v.guard, func(ctx context.Context) ([]rma.ReturnResponse, error) {
		return v.collaborator.CustomerReturns(ctx, *session)
	}, func(returns []rma.ReturnResponse, err error) {
		v.mu.Lock()
		defer v.mu.Unlock()
		if err != nil {
			v.logger.WarnContext(ctx, "loading returns failed", slog.String("customerId", session.CustomerID), slog.String("error", err.Error()))
			v.message = MsgDashboardFailed
			return
		}
		v.message = ""
		v.returns = returns
	})
}

// Logout ends the server session when the collaborator supports it. The
// caller drops its Session either way.
func (v *DashboardView) Logout(ctx context.Context, session *rma.Session) error {
	if session == nil {
		return nil
	}
	v.mu.Lock()
	v.returns = nil
	v.mu.Unlock()
	if l, ok := v.collaborator.(logouter); ok {
		return l.Logout(ctx, *session)
	}
	return nil
}

// Returns lists what the last Load fetched.
func (v *DashboardView) Returns() []rma.ReturnResponse {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.returns
}

// Message returns the load error shown to the shopper.
func (v *DashboardView) Message() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.message
}

// Busy reports whether a load is outstanding.
func (v *DashboardView) Busy() bool { return v.guard.Busy() }

// Close cancels an outstanding load.
func (v *DashboardView) Close() { v.guard.Close() }
