package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// DefaultReturnWindow is how long after the order date a self-service return is accepted.
const DefaultReturnWindow = 90 * 24 * time.Hour

var (
	ErrInvalidOrderNumber = errors.New("order number is required")
	ErrInvalidCustomer    = errors.New("order customer id is required")
	ErrNoItems            = errors.New("order must contain at least one item")
	ErrInvalidStatus      = errors.New("order status is invalid")
	ErrInvalidItem        = errors.New("order item is invalid")
)

// Order models a customer purchase. It is read-only for the returns flow.
type Order struct {
	ID          int64
	OrderNumber string
	CustomerID  string
	TotalAmount decimal.Decimal
	OrderDate   time.Time
	Status      Status
	Items       []OrderItem
}

// NewOrder validates and constructs an Order aggregate. A zero total is computed from the items.
func NewOrder(id int64, orderNumber, customerID string, orderDate time.Time, status Status, items []OrderItem) (*Order, error) {
	order := &Order{
		ID:          id,
		OrderNumber: strings.TrimSpace(orderNumber),
		CustomerID:  strings.TrimSpace(customerID),
		OrderDate:   orderDate,
		Status:      status,
		Items:       append([]OrderItem(nil), items...),
	}
	if order.Status == "" {
		order.Status = StatusPending
	}
	order.TotalAmount = order.ItemsTotal()
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.OrderNumber == "" {
		return ErrInvalidOrderNumber
	}
	if o.CustomerID == "" {
		return ErrInvalidCustomer
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range o.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ItemsTotal sums the total price of every line.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// EligibleItems returns the items a customer may return without assistance.
// The result is computed from Items on every call.
func (o *Order) EligibleItems() []OrderItem {
	eligible := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		if item.Eligible() {
			eligible = append(eligible, item)
		}
	}
	return eligible
}

// Item looks up a line by its identifier.
func (o *Order) Item(id int64) (OrderItem, bool) {
	for _, item := range o.Items {
		if item.ID == id {
			return item, true
		}
	}
	return OrderItem{}, false
}

// BelongsTo reports whether the order was placed by customerID.
func (o *Order) BelongsTo(customerID string) bool {
	return o.CustomerID == strings.TrimSpace(customerID)
}

// WithinReturnWindow reports whether now is no later than window after the order date.
func (o *Order) WithinReturnWindow(now time.Time, window time.Duration) bool {
	if window <= 0 {
		window = DefaultReturnWindow
	}
	return !now.After(o.OrderDate.Add(window))
}

// Valid reports whether s is a known order status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
