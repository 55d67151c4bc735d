package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	orderdomain "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/domain"
)

// DefaultCondition is recorded for lines submitted without a condition.
const DefaultCondition = "Good"

var (
	ErrInvalidRMANumber       = errors.New("rma number is invalid")
	ErrInvalidReason          = errors.New("return reason is invalid")
	ErrInvalidMethod          = errors.New("return method is invalid")
	ErrInvalidStatus          = errors.New("return status is invalid")
	ErrNoItems                = errors.New("at least one item must be returned")
	ErrItemNotInOrder         = errors.New("order item not found")
	ErrDuplicateItem          = errors.New("order item listed more than once")
	ErrItemNotEligible        = errors.New("item is not eligible for self-service return")
	ErrQuantityExceeded       = errors.New("return quantity exceeds purchased quantity for item")
	ErrInvalidQuantity        = errors.New("return quantity must be at least 1 for item")
	ErrOutsideReturnWindow    = errors.New("order is outside return policy timeframe")
	ErrOrderNotOwned          = errors.New("order does not belong to customer")
	ErrStatusTransition       = errors.New("return status cannot change once final")
	ErrArtifactMethodMismatch = errors.New("artifact does not match return method")
)

// Item is one order line being sent back.
type Item struct {
	OrderItemID int64
	ProductName string
	SKU         string
	Quantity    int32
	Condition   string
	Notes       string
	Status      ItemStatus
}

// ItemLine is a requested line before it is checked against the order.
type ItemLine struct {
	OrderItemID int64
	Quantity    int32
	Condition   string
	Notes       string
}

// ReturnRequest is the RMA aggregate.
type ReturnRequest struct {
	RMANumber        string
	OrderNumber      string
	CustomerID       string
	Reason           Reason
	Method           Method
	Status           Status
	Notes            string
	TrackingNumber   string
	QRCodeData       string
	ShippingLabelURL string
	WarehouseAddress string
	Items            []Item
	RequestedDate    time.Time
	ProcessedDate    *time.Time
	CompletedDate    *time.Time
}

// NewReturnRequest checks the requested lines against the order and builds a PENDING request.
// Line errors name the offending product.
func NewReturnRequest(rmaNumber string, order *orderdomain.Order, customerID string, reason Reason, method Method, notes string, lines []ItemLine, now time.Time) (*ReturnRequest, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if !ValidRMANumber(rmaNumber) {
		return nil, ErrInvalidRMANumber
	}
	if !order.BelongsTo(customerID) {
		return nil, ErrOrderNotOwned
	}
	if !reason.Valid() {
		return nil, ErrInvalidReason
	}
	if !method.Valid() {
		return nil, ErrInvalidMethod
	}
	items, err := buildItems(order, lines)
	if err != nil {
		return nil, err
	}
	return &ReturnRequest{
		RMANumber:     rmaNumber,
		OrderNumber:   order.OrderNumber,
		CustomerID:    strings.TrimSpace(customerID),
		Reason:        reason,
		Method:        method,
		Status:        StatusPending,
		Notes:         strings.TrimSpace(notes),
		Items:         items,
		RequestedDate: now,
	}, nil
}

func buildItems(order *orderdomain.Order, lines []ItemLine) ([]Item, error) {
	if len(lines) == 0 {
		return nil, ErrNoItems
	}
	seen := make(map[int64]struct{}, len(lines))
	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		orderItem, ok := order.Item(line.OrderItemID)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrItemNotInOrder, line.OrderItemID)
		}
		if _, dup := seen[line.OrderItemID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateItem, orderItem.ProductName)
		}
		seen[line.OrderItemID] = struct{}{}
		if !orderItem.Eligible() {
			return nil, fmt.Errorf("%w: %s", ErrItemNotEligible, orderItem.ProductName)
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuantity, orderItem.ProductName)
		}
		if line.Quantity > orderItem.Quantity {
			return nil, fmt.Errorf("%w: %s", ErrQuantityExceeded, orderItem.ProductName)
		}
		condition := strings.TrimSpace(line.Condition)
		if condition == "" {
			condition = DefaultCondition
		}
		items = append(items, Item{
			OrderItemID: orderItem.ID,
			ProductName: orderItem.ProductName,
			SKU:         orderItem.SKU,
			Quantity:    line.Quantity,
			Condition:   condition,
			Notes:       strings.TrimSpace(line.Notes),
			Status:      ItemStatusPending,
		})
	}
	return items, nil
}

// AttachQRCode records the drop-off QR code.
func (r *ReturnRequest) AttachQRCode(data string) error {
	if r.Method != MethodDropOffStore {
		return ErrArtifactMethodMismatch
	}
	r.QRCodeData = data
	return nil
}

// AttachShippingLabel records the warehouse shipment artifacts.
func (r *ReturnRequest) AttachShippingLabel(trackingNumber, labelURL, warehouseAddress string) error {
	if r.Method != MethodShipToWarehouse {
		return ErrArtifactMethodMismatch
	}
	r.TrackingNumber = trackingNumber
	r.ShippingLabelURL = labelURL
	r.WarehouseAddress = warehouseAddress
	return nil
}

// Approve moves a new request to APPROVED and stamps the processed date.
func (r *ReturnRequest) Approve(now time.Time) {
	r.Status = StatusApproved
	processed := now
	r.ProcessedDate = &processed
}

// UpdateStatus applies an operator status change.
func (r *ReturnRequest) UpdateStatus(status Status, now time.Time) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if r.Status.Terminal() && status != r.Status {
		return fmt.Errorf("%w: %s", ErrStatusTransition, r.Status)
	}
	r.Status = status
	if status == StatusCompleted && r.CompletedDate == nil {
		completed := now
		r.CompletedDate = &completed
	}
	if itemStatus, ok := itemStatusFor(status); ok {
		for i := range r.Items {
			r.Items[i].Status = itemStatus
		}
	}
	return nil
}

// Clone returns a deep copy safe to hand across goroutines.
func (r *ReturnRequest) Clone() *ReturnRequest {
	if r == nil {
		return nil
	}
	out := *r
	out.Items = append([]Item(nil), r.Items...)
	if r.ProcessedDate != nil {
		processed := *r.ProcessedDate
		out.ProcessedDate = &processed
	}
	if r.CompletedDate != nil {
		completed := *r.CompletedDate
		out.CompletedDate = &completed
	}
	return &out
}
