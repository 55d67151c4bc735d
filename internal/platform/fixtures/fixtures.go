package fixtures

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	customerdomain "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/domain"
	customerports "github.com/Apurer/go-gin-returns-portal/internal/domains/customers/ports"
	orderdomain "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/adapters/artifacts"
	returndomain "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	returnports "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
)

// SampleRMANumber is the pre-approved return seeded for CUST001.
const SampleRMANumber = "RMA-ABC12345"

// Repositories receives the seeded aggregates.
type Repositories struct {
	Customers customerports.Repository
	Orders    orderports.Repository
	Returns   returnports.Repository
}

type customerSeed struct {
	id, first, last, email, phone string
}

var customers = []customerSeed{
	{id: "CUST001", first: "John", last: "Doe", email: "john.doe@example.com", phone: "555-0101"},
	{id: "CUST002", first: "Jane", last: "Smith", email: "jane.smith@example.com", phone: "555-0102"},
	{id: "CUST003", first: "Bob", last: "Johnson", email: "bob.johnson@example.com", phone: "555-0103"},
}

type orderSeed struct {
	id         int64
	number     string
	customerID string
	daysAgo    int
	status     orderdomain.Status
	items      []orderdomain.OrderItem
}

// Item ids are unique across orders.
var orders = []orderSeed{
	{id: 1, number: "ORD-2024-001", customerID: "CUST001", daysAgo: 30, status: orderdomain.StatusCompleted, items: []orderdomain.OrderItem{
		item(1, "DW-DCD771C2", "DeWalt Cordless Drill", "20V MAX cordless drill/driver kit", "DW-DCD771C2", 1, "199.99", orderdomain.CategoryTools, false, false),
		item(2, "HUS-SD-10", "Screwdriver Set", "10-piece precision screwdriver set", "HUS-SD-10", 1, "49.99", orderdomain.CategoryTools, false, false),
	}},
	{id: 2, number: "ORD-2024-002", customerID: "CUST002", daysAgo: 15, status: orderdomain.StatusDelivered, items: []orderdomain.OrderItem{
		item(3, "TORO-21", "Lawn Mower", "21 in. self-propelled gas lawn mower", "TORO-21-SP", 1, "449.00", orderdomain.CategoryGarden, true, false),
		item(4, "FLEX-50", "Garden Hose", "50 ft. flexible garden hose", "FLEX-50-GH", 1, "39.98", orderdomain.CategoryGarden, false, false),
	}},
	{id: 3, number: "ORD-2024-003", customerID: "CUST003", daysAgo: 10, status: orderdomain.StatusDelivered, items: []orderdomain.OrderItem{
		item(5, "KLEAN-PT-1G", "Paint Thinner", "1 gal. paint thinner", "KLEAN-PT-1G", 2, "18.97", orderdomain.CategoryPaint, false, true),
		item(6, "PURDY-BR-3", "Paint Brush Set", "3-piece professional brush set", "PURDY-BR-3", 1, "29.97", orderdomain.CategoryPaint, false, false),
	}},
	{id: 4, number: "ORD-2024-004", customerID: "CUST001", daysAgo: 5, status: orderdomain.StatusShipped, items: []orderdomain.OrderItem{
		item(7, "PHIL-LED-8", "LED Light Bulbs", "60W equivalent LED bulbs, 8-pack", "PHIL-LED-8", 1, "24.97", orderdomain.CategoryLighting, false, false),
		item(8, "KWIK-DH-1", "Door Handle", "Satin nickel entry door handle", "KWIK-DH-1", 1, "34.98", orderdomain.CategoryHardware, false, false),
		item(9, "LEV-OUT-15", "Electrical Outlet", "15 amp tamper-resistant outlet", "LEV-OUT-15", 2, "2.48", orderdomain.CategoryElectrical, false, false),
	}},
}

func item(id int64, productID, name, description, sku string, qty int32, price string, category orderdomain.Category, large, hazardous bool) orderdomain.OrderItem {
	return orderdomain.OrderItem{
		ID:                 id,
		ProductID:          productID,
		ProductName:        name,
		ProductDescription: description,
		SKU:                sku,
		Quantity:           qty,
		UnitPrice:          decimal.RequireFromString(price),
		Category:           category,
		IsLargeItem:        large,
		IsHazardous:        hazardous,
	}
}

// Load seeds customers, orders and the sample return with dates relative to now.
// Running it twice leaves the same data in place.
func Load(ctx context.Context, repos Repositories, now time.Time) error {
	if repos.Customers == nil || repos.Orders == nil || repos.Returns == nil {
		return errors.New("fixtures: repositories not configured")
	}
	for _, seed := range customers {
		customer, err := customerdomain.NewCustomer(seed.id, seed.first, seed.last, seed.email, seed.phone)
		if err != nil {
			return fmt.Errorf("fixtures: customer %s: %w", seed.id, err)
		}
		if _, err := repos.Customers.Save(ctx, customer); err != nil {
			return fmt.Errorf("fixtures: save customer %s: %w", seed.id, err)
		}
	}

	var first *orderdomain.Order
	for _, seed := range orders {
		order, err := orderdomain.NewOrder(seed.id, seed.number, seed.customerID, now.AddDate(0, 0, -seed.daysAgo), seed.status, seed.items)
		if err != nil {
			return fmt.Errorf("fixtures: order %s: %w", seed.number, err)
		}
		if _, err := repos.Orders.Save(ctx, order); err != nil {
			return fmt.Errorf("fixtures: save order %s: %w", seed.number, err)
		}
		if first == nil {
			first = order
		}
	}

	return loadSampleReturn(ctx, repos.Returns, first, now)
}

func loadSampleReturn(ctx context.Context, repo returnports.Repository, order *orderdomain.Order, now time.Time) error {
	requested := now.AddDate(0, 0, -25)
	request, err := returndomain.NewReturnRequest(SampleRMANumber, order, order.CustomerID, returndomain.ReasonDefective, returndomain.MethodDropOffStore,
		"Drill stopped working after two uses", []returndomain.ItemLine{{OrderItemID: 1, Quantity: 1, Notes: "Motor failure"}}, requested)
	if err != nil {
		return fmt.Errorf("fixtures: sample return: %w", err)
	}
	qrCode, err := artifacts.NewQRCodeGenerator().Generate(ctx, request)
	if err != nil {
		return fmt.Errorf("fixtures: sample return qr code: %w", err)
	}
	if err := request.AttachQRCode(qrCode); err != nil {
		return err
	}
	request.Approve(requested.Add(time.Hour))
	if _, err := repo.Create(ctx, request); err != nil && !errors.Is(err, returnports.ErrDuplicateRMA) {
		return fmt.Errorf("fixtures: save sample return: %w", err)
	}
	return nil
}
