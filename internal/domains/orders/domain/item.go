package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category classifies the product on an order line.
type Category string

const (
	CategoryTools      Category = "TOOLS"
	CategoryHardware   Category = "HARDWARE"
	CategoryElectrical Category = "ELECTRICAL"
	CategoryPlumbing   Category = "PLUMBING"
	CategoryPaint      Category = "PAINT"
	CategoryGarden     Category = "GARDEN"
	CategoryAppliances Category = "APPLIANCES"
	CategoryFurniture  Category = "FURNITURE"
	CategoryFlooring   Category = "FLOORING"
	CategoryLighting   Category = "LIGHTING"
	CategoryOutdoor    Category = "OUTDOOR"
	CategoryAutomotive Category = "AUTOMOTIVE"
	CategoryStorage    Category = "STORAGE"
	CategorySafety     Category = "SAFETY"
	CategoryOther      Category = "OTHER"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryTools, CategoryHardware, CategoryElectrical, CategoryPlumbing, CategoryPaint,
		CategoryGarden, CategoryAppliances, CategoryFurniture, CategoryFlooring, CategoryLighting,
		CategoryOutdoor, CategoryAutomotive, CategoryStorage, CategorySafety, CategoryOther:
		return true
	default:
		return false
	}
}

// OrderItem is a single purchased product line.
type OrderItem struct {
	ID                 int64
	ProductID          string
	ProductName        string
	ProductDescription string
	SKU                string
	Quantity           int32
	UnitPrice          decimal.Decimal
	Category           Category
	IsLargeItem        bool
	IsHazardous        bool
}

// TotalPrice is the unit price times the ordered quantity.
func (i OrderItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt32(i.Quantity))
}

// Eligible reports whether the item can be returned through self-service.
// Large and hazardous items need assisted handling.
func (i OrderItem) Eligible() bool {
	return !i.IsLargeItem && !i.IsHazardous
}

// Validate enforces line-level invariants.
func (i OrderItem) Validate() error {
	if i.ID <= 0 {
		return fmt.Errorf("%w: id must be greater than zero", ErrInvalidItem)
	}
	if strings.TrimSpace(i.ProductName) == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidItem)
	}
	if i.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than zero for %s", ErrInvalidItem, i.ProductName)
	}
	if i.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price cannot be negative for %s", ErrInvalidItem, i.ProductName)
	}
	if !i.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidItem, i.Category)
	}
	return nil
}
