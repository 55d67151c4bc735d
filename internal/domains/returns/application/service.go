package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	orderdomain "github.com/Apurer/go-gin-returns-portal/internal/domains/orders/domain"
	returntypes "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/application/types"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
)

// maxRMAAttempts bounds RMA regeneration after number collisions.
const maxRMAAttempts = 5

// Service orchestrates the returns bounded context use cases.
type Service struct {
	repo        ports.Repository
	orders      ports.OrderReader
	customers   ports.CustomerReader
	qrCodes     ports.QRCodeGenerator
	labels      ports.ShippingLabeler
	idempotency ports.IdempotencyStore
	window      time.Duration
	newRMA      func() string
	now         func() time.Time
}

// Option customises the service.
type Option func(*Service)

// WithIdempotencyStore enables replay of submissions carrying an idempotency key.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) { s.idempotency = store }
}

// WithReturnWindow overrides how long after the order date returns are accepted.
func WithReturnWindow(window time.Duration) Option {
	return func(s *Service) {
		if window > 0 {
			s.window = window
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRMAGenerator overrides RMA number generation.
func WithRMAGenerator(next func() string) Option {
	return func(s *Service) {
		if next != nil {
			s.newRMA = next
		}
	}
}

// NewService wires the returns service with its dependencies.
func NewService(repo ports.Repository, orders ports.OrderReader, customers ports.CustomerReader, qrCodes ports.QRCodeGenerator, labels ports.ShippingLabeler, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		orders:    orders,
		customers: customers,
		qrCodes:   qrCodes,
		labels:    labels,
		window:    orderdomain.DefaultReturnWindow,
		newRMA:    domain.NewRMANumber,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateReturn validates a submission against the order, issues an RMA with its
// method-specific artifacts, and persists it as APPROVED.
// With an idempotency key the key is reserved before the RMA is stored, so
// concurrent retries of one submission create a single return.
func (s *Service) CreateReturn(ctx context.Context, input returntypes.CreateReturnInput) (*domain.ReturnRequest, error) {
	key := strings.TrimSpace(input.IdempotencyKey)
	if s.idempotency == nil {
		key = ""
	}
	var hash string
	if key != "" {
		var err error
		if hash, err = FingerprintCreateReturn(input); err != nil {
			return nil, err
		}
		existing, err := s.idempotency.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if existing != nil && !existing.Abandoned(s.now()) {
			return s.replay(ctx, existing, hash)
		}
	}

	customerID := strings.TrimSpace(input.CustomerID)
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	order, err := s.orders.GetByOrderNumber(ctx, strings.TrimSpace(input.OrderNumber))
	if err != nil {
		return nil, err
	}
	if !order.BelongsTo(customerID) {
		return nil, domain.ErrOrderNotOwned
	}
	now := s.now()
	if !order.WithinReturnWindow(now, s.window) {
		return nil, mapError(domain.ErrOutsideReturnWindow)
	}

	lines := make([]domain.ItemLine, 0, len(input.Items))
	for _, item := range input.Items {
		lines = append(lines, domain.ItemLine{
			OrderItemID: item.OrderItemID,
			Quantity:    item.Quantity,
			Condition:   item.Condition,
			Notes:       item.Notes,
		})
	}

	if key != "" {
		held, err := s.idempotency.Reserve(ctx, key, hash)
		if errors.Is(err, ports.ErrIdempotencyConflict) && held != nil {
			return s.replay(ctx, held, hash)
		}
		if err != nil {
			return nil, err
		}
	}

	saved, err := s.persist(ctx, order, customerID, input, lines, now)
	if err != nil {
		if key != "" {
			_ = s.idempotency.Release(context.WithoutCancel(ctx), key)
		}
		return nil, err
	}
	if key != "" {
		if err := s.idempotency.Complete(ctx, key, saved.RMANumber); err != nil {
			return nil, fmt.Errorf("record idempotency key: %w", err)
		}
	}
	return saved, nil
}

// persist issues an RMA number, regenerating it on collisions.
func (s *Service) persist(ctx context.Context, order *orderdomain.Order, customerID string, input returntypes.CreateReturnInput, lines []domain.ItemLine, now time.Time) (*domain.ReturnRequest, error) {
	for attempt := 0; attempt < maxRMAAttempts; attempt++ {
		request, err := domain.NewReturnRequest(s.newRMA(), order, customerID, domain.Reason(input.Reason), domain.Method(input.Method), input.Notes, lines, now)
		if err != nil {
			return nil, mapError(err)
		}
		if err := s.attachArtifacts(ctx, request); err != nil {
			return nil, err
		}
		request.Approve(now)
		saved, err := s.repo.Create(ctx, request)
		if errors.Is(err, ports.ErrDuplicateRMA) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return saved, nil
	}
	return nil, fmt.Errorf("allocate rma number: %w", ports.ErrDuplicateRMA)
}

func (s *Service) replay(ctx context.Context, record *ports.IdempotencyRecord, hash string) (*domain.ReturnRequest, error) {
	if record.RequestHash != hash {
		return nil, ports.ErrIdempotencyConflict
	}
	if record.Pending() {
		return nil, ports.ErrIdempotencyInProgress
	}
	return s.repo.GetByRMA(ctx, record.RMANumber)
}

func (s *Service) attachArtifacts(ctx context.Context, request *domain.ReturnRequest) error {
	switch request.Method {
	case domain.MethodDropOffStore:
		if s.qrCodes == nil {
			return errors.New("qr code generator not configured")
		}
		data, err := s.qrCodes.Generate(ctx, request)
		if err != nil {
			return fmt.Errorf("generate qr code: %w", err)
		}
		return request.AttachQRCode(data)
	case domain.MethodShipToWarehouse:
		if s.labels == nil {
			return errors.New("shipping labeler not configured")
		}
		label, err := s.labels.Issue(ctx, request)
		if err != nil {
			return fmt.Errorf("issue shipping label: %w", err)
		}
		return request.AttachShippingLabel(label.TrackingNumber, label.LabelURL, label.WarehouseAddress)
	default:
		return mapError(domain.ErrInvalidMethod)
	}
}

// GetReturn loads a request by RMA number.
func (s *Service) GetReturn(ctx context.Context, rmaNumber string) (*domain.ReturnRequest, error) {
	rmaNumber = strings.TrimSpace(rmaNumber)
	if rmaNumber == "" {
		return nil, ports.ErrNotFound
	}
	return s.repo.GetByRMA(ctx, rmaNumber)
}

// CustomerReturns lists the customer's requests, newest first.
func (s *Service) CustomerReturns(ctx context.Context, customerID string) ([]*domain.ReturnRequest, error) {
	customerID = strings.TrimSpace(customerID)
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.repo.ListByCustomer(ctx, customerID)
}

// UpdateStatus applies a status change; final statuses are never left.
func (s *Service) UpdateStatus(ctx context.Context, input returntypes.UpdateStatusInput) (*domain.ReturnRequest, error) {
	request, err := s.repo.GetByRMA(ctx, strings.TrimSpace(input.RMANumber))
	if err != nil {
		return nil, err
	}
	status := domain.Status(strings.ToUpper(strings.TrimSpace(input.Status)))
	if err := request.UpdateStatus(status, s.now()); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, request)
}

var _ ports.Service = (*Service)(nil)
