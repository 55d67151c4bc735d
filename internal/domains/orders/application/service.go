package application

import (
	"context"
	"strings"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/orders/ports"
)

// Service orchestrates order lookup use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// LookupOrder finds an order by its customer-facing number.
func (s *Service) LookupOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, mapError(domain.ErrInvalidOrderNumber)
	}
	return s.repo.GetByOrderNumber(ctx, orderNumber)
}

// CustomerOrders lists the orders placed by a customer, newest first.
func (s *Service) CustomerOrders(ctx context.Context, customerID string) ([]*domain.Order, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, mapError(domain.ErrInvalidCustomer)
	}
	return s.repo.ListByCustomer(ctx, customerID)
}

var _ ports.Service = (*Service)(nil)
