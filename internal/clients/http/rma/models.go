package rma

import (
	"time"

	orderdomain "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/domain"
	returndomain "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
)

// Session identifies the logged-in shopper on later calls.
type Session struct {
	CustomerID string    `json:"customerId"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// Order is a purchase as served by the order lookup.
type Order struct {
	ID          int64              `json:"id"`
	OrderNumber string             `json:"orderNumber"`
	CustomerID  string             `json:"customerId"`
	TotalAmount float64            `json:"totalAmount"`
	OrderDate   time.Time          `json:"orderDate"`
	Status      orderdomain.Status `json:"status"`
	Items       []OrderItem        `json:"orderItems"`
}

// OrderItem is one purchased line.
type OrderItem struct {
	ID                 int64                `json:"id"`
	ProductID          string               `json:"productId"`
	ProductName        string               `json:"productName"`
	ProductDescription string               `json:"productDescription,omitempty"`
	SKU                string               `json:"sku"`
	Quantity           int32                `json:"quantity"`
	UnitPrice          float64              `json:"unitPrice"`
	TotalPrice         float64              `json:"totalPrice"`
	Category           orderdomain.Category `json:"category"`
	IsLargeItem        bool                 `json:"isLargeItem"`
	IsHazardous        bool                 `json:"isHazardous"`
}

// Eligible reports whether the line can be returned without assistance.
func (i OrderItem) Eligible() bool {
	return !i.IsLargeItem && !i.IsHazardous
}

// ReturnRequest is the return submission payload.
type ReturnRequest struct {
	OrderNumber string              `json:"orderNumber"`
	Reason      returndomain.Reason `json:"reason"`
	Method      returndomain.Method `json:"method"`
	Notes       string              `json:"notes,omitempty"`
	ReturnItems []ReturnItemRequest `json:"returnItems"`
}

// ReturnItemRequest is one line of a submission.
type ReturnItemRequest struct {
	OrderItemID      int64  `json:"orderItemId"`
	QuantityToReturn int32  `json:"quantityToReturn"`
	Condition        string `json:"condition"`
	Notes            string `json:"notes,omitempty"`
}

// ReturnResponse is an issued RMA.
type ReturnResponse struct {
	RMANumber        string              `json:"rmaNumber"`
	OrderNumber      string              `json:"orderNumber"`
	Reason           returndomain.Reason `json:"reason"`
	Method           returndomain.Method `json:"method"`
	Status           returndomain.Status `json:"status"`
	Notes            string              `json:"notes,omitempty"`
	TrackingNumber   string              `json:"trackingNumber,omitempty"`
	QRCodeData       string              `json:"qrCodeData,omitempty"`
	ShippingLabelURL string              `json:"shippingLabelUrl,omitempty"`
	WarehouseAddress string              `json:"warehouseAddress,omitempty"`
	ReturnItems      []ReturnItem        `json:"returnItems"`
	RequestedDate    time.Time           `json:"requestedDate"`
	ProcessedDate    *time.Time          `json:"processedDate,omitempty"`
	CompletedDate    *time.Time          `json:"completedDate,omitempty"`
}

// ReturnItem is one line of an issued RMA.
type ReturnItem struct {
	OrderItemID      int64                   `json:"orderItemId"`
	ProductName      string                  `json:"productName"`
	SKU              string                  `json:"sku,omitempty"`
	QuantityToReturn int32                   `json:"quantityToReturn"`
	Condition        string                  `json:"condition"`
	Notes            string                  `json:"notes,omitempty"`
	Status           returndomain.ItemStatus `json:"status"`
}

// ChatMessage is sent to the assistant.
type ChatMessage struct {
	Message    string `json:"message"`
	SessionID  string `json:"sessionId,omitempty"`
	CustomerID string `json:"customerId,omitempty"`
}

// ChatReply is the assistant's answer.
type ChatReply struct {
	Response         string    `json:"response"`
	SessionID        string    `json:"sessionId"`
	Timestamp        time.Time `json:"timestamp"`
	Intent           string    `json:"intent"`
	Confidence       float64   `json:"confidence"`
	SuggestedActions []string  `json:"suggestedActions"`
}
