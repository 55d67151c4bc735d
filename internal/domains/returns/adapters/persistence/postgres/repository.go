package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists return requests in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the return tables, including idempotency keys.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&returnRecord{}, &returnItemRecord{}, &idempotencyRecord{})
}

type returnRecord struct {
	ID               int64              `gorm:"primaryKey;column:id;autoIncrement"`
	RMANumber        string             `gorm:"column:rma_number;size:32;uniqueIndex"`
	OrderNumber      string             `gorm:"column:order_number;size:64;index"`
	CustomerID       string             `gorm:"column:customer_id;size:64;index:idx_returns_customer_requested"`
	Reason           string             `gorm:"column:reason;type:varchar(32)"`
	Method           string             `gorm:"column:method;type:varchar(32)"`
	Status           string             `gorm:"column:status;type:varchar(32);index"`
	Notes            string             `gorm:"column:notes"`
	TrackingNumber   string             `gorm:"column:tracking_number;size:64"`
	QRCodeData       string             `gorm:"column:qr_code_data;type:text"`
	ShippingLabelURL string             `gorm:"column:shipping_label_url"`
	WarehouseAddress string             `gorm:"column:warehouse_address"`
	RequestedDate    time.Time          `gorm:"column:requested_date;index:idx_returns_customer_requested"`
	ProcessedDate    *time.Time         `gorm:"column:processed_date"`
	CompletedDate    *time.Time         `gorm:"column:completed_date"`
	Items            []returnItemRecord `gorm:"foreignKey:ReturnID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time          `gorm:"column:created_at"`
	UpdatedAt        time.Time          `gorm:"column:updated_at"`
}

func (returnRecord) TableName() string { return "return_requests" }

type returnItemRecord struct {
	ID          int64  `gorm:"primaryKey;column:id;autoIncrement"`
	ReturnID    int64  `gorm:"column:return_id;index"`
	Position    int    `gorm:"column:position"`
	OrderItemID int64  `gorm:"column:order_item_id"`
	ProductName string `gorm:"column:product_name"`
	SKU         string `gorm:"column:sku;size:64"`
	Quantity    int32  `gorm:"column:quantity"`
	Condition   string `gorm:"column:item_condition;size:64"`
	Notes       string `gorm:"column:notes"`
	Status      string `gorm:"column:status;type:varchar(32)"`
}

func (returnItemRecord) TableName() string { return "return_items" }

// Create inserts a new request with its lines.
func (r *Repository) Create(ctx context.Context, request *domain.ReturnRequest) (*domain.ReturnRequest, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errors.New("return request is nil")
	}
	record := toRecord(request)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&returnRecord{}).Where("rma_number = ?", record.RMANumber).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ports.ErrDuplicateRMA
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateRMA
		}
		return nil, err
	}
	return r.GetByRMA(ctx, request.RMANumber)
}

// Update rewrites the mutable columns and line statuses of an existing request.
func (r *Repository) Update(ctx context.Context, request *domain.ReturnRequest) (*domain.ReturnRequest, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errors.New("return request is nil")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing returnRecord
		if err := tx.Select("id").First(&existing, "rma_number = ?", request.RMANumber).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		if err := tx.Model(&returnRecord{}).Where("id = ?", existing.ID).Updates(map[string]any{
			"status":             string(request.Status),
			"notes":              request.Notes,
			"tracking_number":    request.TrackingNumber,
			"qr_code_data":       request.QRCodeData,
			"shipping_label_url": request.ShippingLabelURL,
			"warehouse_address":  request.WarehouseAddress,
			"processed_date":     request.ProcessedDate,
			"completed_date":     request.CompletedDate,
			"updated_at":         time.Now(),
		}).Error; err != nil {
			return err
		}
		for _, item := range request.Items {
			if err := tx.Model(&returnItemRecord{}).
				Where("return_id = ? AND order_item_id = ?", existing.ID, item.OrderItemID).
				Update("status", string(item.Status)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByRMA(ctx, request.RMANumber)
}

// GetByRMA fetches a request and its lines.
func (r *Repository) GetByRMA(ctx context.Context, rmaNumber string) (*domain.ReturnRequest, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record returnRecord
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&record, "rma_number = ?", rmaNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListByCustomer returns a customer's requests, newest request first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.ReturnRequest, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []returnRecord
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("customer_id = ?", customerID).
		Order("requested_date DESC").
		Order("rma_number ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	requests := make([]*domain.ReturnRequest, 0, len(records))
	for i := range records {
		requests = append(requests, records[i].toDomain())
	}
	return requests, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres return repository not configured")
	}
	return nil
}

func toRecord(request *domain.ReturnRequest) returnRecord {
	rec := returnRecord{
		RMANumber:        request.RMANumber,
		OrderNumber:      request.OrderNumber,
		CustomerID:       request.CustomerID,
		Reason:           string(request.Reason),
		Method:           string(request.Method),
		Status:           string(request.Status),
		Notes:            request.Notes,
		TrackingNumber:   request.TrackingNumber,
		QRCodeData:       request.QRCodeData,
		ShippingLabelURL: request.ShippingLabelURL,
		WarehouseAddress: request.WarehouseAddress,
		RequestedDate:    request.RequestedDate,
		ProcessedDate:    request.ProcessedDate,
		CompletedDate:    request.CompletedDate,
	}
	for i, item := range request.Items {
		rec.Items = append(rec.Items, returnItemRecord{
			Position:    i,
			OrderItemID: item.OrderItemID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			Condition:   item.Condition,
			Notes:       item.Notes,
			Status:      string(item.Status),
		})
	}
	return rec
}

func (r returnRecord) toDomain() *domain.ReturnRequest {
	request := &domain.ReturnRequest{
		RMANumber:        r.RMANumber,
		OrderNumber:      r.OrderNumber,
		CustomerID:       r.CustomerID,
		Reason:           domain.Reason(r.Reason),
		Method:           domain.Method(r.Method),
		Status:           domain.Status(r.Status),
		Notes:            r.Notes,
		TrackingNumber:   r.TrackingNumber,
		QRCodeData:       r.QRCodeData,
		ShippingLabelURL: r.ShippingLabelURL,
		WarehouseAddress: r.WarehouseAddress,
		RequestedDate:    r.RequestedDate,
		ProcessedDate:    r.ProcessedDate,
		CompletedDate:    r.CompletedDate,
		Items:            make([]domain.Item, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		request.Items = append(request.Items, domain.Item{
			OrderItemID: item.OrderItemID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			Condition:   item.Condition,
			Notes:       item.Notes,
			Status:      domain.ItemStatus(item.Status),
		})
	}
	return request
}
