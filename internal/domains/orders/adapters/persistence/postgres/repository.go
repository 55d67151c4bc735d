package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the order tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderRecord{}, &orderItemRecord{})
}

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID          int64             `gorm:"primaryKey;column:id"`
	OrderNumber string            `gorm:"column:order_number;size:64;uniqueIndex"`
	CustomerID  string            `gorm:"column:customer_id;size:64;index:idx_orders_customer_date"`
	TotalAmount decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2)"`
	OrderDate   time.Time         `gorm:"column:order_date;index:idx_orders_customer_date"`
	Status      string            `gorm:"column:status;type:varchar(32)"`
	Items       []orderItemRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"column:created_at"`
	UpdatedAt   time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID                 int64           `gorm:"primaryKey;column:id"`
	OrderID            int64           `gorm:"column:order_id;index"`
	Position           int             `gorm:"column:position"`
	ProductID          string          `gorm:"column:product_id;size:64"`
	ProductName        string          `gorm:"column:product_name"`
	ProductDescription string          `gorm:"column:product_description"`
	SKU                string          `gorm:"column:sku;size:64"`
	Quantity           int32           `gorm:"column:quantity"`
	UnitPrice          decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)"`
	Category           string          `gorm:"column:category;type:varchar(32)"`
	IsLargeItem        bool            `gorm:"column:is_large_item"`
	IsHazardous        bool            `gorm:"column:is_hazardous"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Save inserts or replaces an order together with its lines.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := record.Items
		record.Items = nil
		if record.ID == 0 {
			var existing orderRecord
			err := tx.Select("id").First(&existing, "order_number = ?", record.OrderNumber).Error
			if err == nil {
				record.ID = existing.ID
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"order_number", "customer_id", "total_amount", "order_date", "status", "updated_at"}),
		}).Create(&record).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", record.ID).Delete(&orderItemRecord{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].OrderID = record.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByOrderNumber(ctx, order.OrderNumber)
}

// GetByOrderNumber fetches an order and its lines.
func (r *Repository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&record, "order_number = ?", orderNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListByCustomer returns a customer's orders, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("customer_id = ?", customerID).
		Order("order_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	rec := orderRecord{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		CustomerID:  order.CustomerID,
		TotalAmount: order.TotalAmount,
		OrderDate:   order.OrderDate,
		Status:      string(order.Status),
	}
	for i, item := range order.Items {
		rec.Items = append(rec.Items, orderItemRecord{
			ID:                 item.ID,
			Position:           i,
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			ProductDescription: item.ProductDescription,
			SKU:                item.SKU,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			Category:           string(item.Category),
			IsLargeItem:        item.IsLargeItem,
			IsHazardous:        item.IsHazardous,
		})
	}
	return rec
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:          r.ID,
		OrderNumber: r.OrderNumber,
		CustomerID:  r.CustomerID,
		TotalAmount: r.TotalAmount,
		OrderDate:   r.OrderDate,
		Status:      domain.Status(r.Status),
		Items:       make([]domain.OrderItem, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:                 item.ID,
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			ProductDescription: item.ProductDescription,
			SKU:                item.SKU,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			Category:           domain.Category(item.Category),
			IsLargeItem:        item.IsLargeItem,
			IsHazardous:        item.IsHazardous,
		})
	}
	return order
}
