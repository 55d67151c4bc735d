package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps return requests in memory keyed by RMA number.
type Repository struct {
	mu       sync.RWMutex
	requests map[string]*domain.ReturnRequest
}

func NewRepository() *Repository {
	return &Repository{requests: map[string]*domain.ReturnRequest{}}
}

func (r *Repository) Create(_ context.Context, request *domain.ReturnRequest) (*domain.ReturnRequest, error) {
	if request == nil {
		return nil, errors.New("return request is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.requests[request.RMANumber]; exists {
		return nil, ports.ErrDuplicateRMA
	}
	r.requests[request.RMANumber] = request.Clone()
	return request.Clone(), nil
}

func (r *Repository) Update(_ context.Context, request *domain.ReturnRequest) (*domain.ReturnRequest, error) {
	if request == nil {
		return nil, errors.New("return request is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.requests[request.RMANumber]; !exists {
		return nil, ports.ErrNotFound
	}
	r.requests[request.RMANumber] = request.Clone()
	return request.Clone(), nil
}

func (r *Repository) GetByRMA(_ context.Context, rmaNumber string) (*domain.ReturnRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	request, ok := r.requests[rmaNumber]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return request.Clone(), nil
}

func (r *Repository) ListByCustomer(_ context.Context, customerID string) ([]*domain.ReturnRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.ReturnRequest, 0)
	for _, request := range r.requests {
		if request.CustomerID == customerID {
			result = append(result, request.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].RequestedDate.Equal(result[j].RequestedDate) {
			return result[i].RMANumber < result[j].RMANumber
		}
		return result[i].RequestedDate.After(result[j].RequestedDate)
	})
	return result, nil
}

// Delete removes a request; used by contract test provider states.
func (r *Repository) Delete(_ context.Context, rmaNumber string) {
	r.mu.Lock()
	delete(r.requests, rmaNumber)
	r.mu.Unlock()
}
