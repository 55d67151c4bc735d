package mapper

import (
	"time"

	orderdomain "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/domain"
)

// Order is the JSON shape served to the portal.
type Order struct {
	ID          int64       `json:"id"`
	OrderNumber string      `json:"orderNumber"`
	CustomerID  string      `json:"customerId"`
	TotalAmount float64     `json:"totalAmount"`
	OrderDate   time.Time   `json:"orderDate"`
	Status      string      `json:"status"`
	Items       []OrderItem `json:"orderItems"`
}

// OrderItem is the JSON shape of an order line.
type OrderItem struct {
	ID                 int64   `json:"id"`
	ProductID          string  `json:"productId"`
	ProductName        string  `json:"productName"`
	ProductDescription string  `json:"productDescription,omitempty"`
	SKU                string  `json:"sku"`
	Quantity           int32   `json:"quantity"`
	UnitPrice          float64 `json:"unitPrice"`
	TotalPrice         float64 `json:"totalPrice"`
	Category           string  `json:"category"`
	IsLargeItem        bool    `json:"isLargeItem"`
	IsHazardous        bool    `json:"isHazardous"`
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *orderdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	out := Order{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		CustomerID:  order.CustomerID,
		TotalAmount: order.TotalAmount.InexactFloat64(),
		OrderDate:   order.OrderDate,
		Status:      string(order.Status),
		Items:       make([]OrderItem, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		out.Items = append(out.Items, OrderItem{
			ID:                 item.ID,
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			ProductDescription: item.ProductDescription,
			SKU:                item.SKU,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice.InexactFloat64(),
			TotalPrice:         item.TotalPrice().InexactFloat64(),
			Category:           string(item.Category),
			IsLargeItem:        item.IsLargeItem,
			IsHazardous:        item.IsHazardous,
		})
	}
	return out
}

// FromDomainOrders converts a list of domain orders.
func FromDomainOrders(orders []*orderdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}
