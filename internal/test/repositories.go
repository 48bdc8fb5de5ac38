package test

import (
	"context"
	"fmt"
	"sync"

	domainErrors "github.com/tulamia/orderdesk/internal/domain/errors"
	"github.com/tulamia/orderdesk/internal/domain/model"
)

// CatalogRepositoryStub stores menu items in-memory for tests.
type CatalogRepositoryStub struct {
	mu    sync.Mutex
	Items []model.MenuItem
	Err   error
}

// ActiveItems returns the configured catalog or the stub error.
func (s *CatalogRepositoryStub) ActiveItems(ctx context.Context) ([]model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	items := make([]model.MenuItem, 0, len(s.Items))
	for _, item := range s.Items {
		if item.Active {
			items = append(items, item)
		}
	}
	return items, nil
}

// UpsertItem inserts or replaces an item keyed by id.
func (s *CatalogRepositoryStub) UpsertItem(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return model.MenuItem{}, s.Err
	}
	for i, existing := range s.Items {
		if existing.ID == item.ID {
			s.Items[i] = item
			return item, nil
		}
	}
	s.Items = append(s.Items, item)
	return item, nil
}

// DeleteItem removes an item or reports not found.
func (s *CatalogRepositoryStub) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i, existing := range s.Items {
		if existing.ID == id {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// OrderRepositoryStub stores orders in-memory for tests.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders []model.Order
	Next   int
	Err    error
}

// CreateOrder assigns a sequential id and stores the order.
func (s *OrderRepositoryStub) CreateOrder(ctx context.Context, order model.Order) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	s.Next++
	order.ID = fmt.Sprintf("order-%d", s.Next)
	s.Orders = append([]model.Order{order}, s.Orders...)
	return order.ID, nil
}

// GetOrder fetches a stored order by id.
func (s *OrderRepositoryStub) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, order := range s.Orders {
		if order.ID == id {
			o := order
			return &o, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListRecent returns stored orders newest first, capped at limit.
func (s *OrderRepositoryStub) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if limit <= 0 || limit > len(s.Orders) {
		limit = len(s.Orders)
	}
	out := make([]model.Order, limit)
	copy(out, s.Orders[:limit])
	return out, nil
}

// SetPaymentStatus updates a stored order's settlement status.
func (s *OrderRepositoryStub) SetPaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			s.Orders[i].Payment.Status = status
			o := s.Orders[i]
			return &o, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// DeleteOrder removes a stored order or reports not found.
func (s *OrderRepositoryStub) DeleteOrder(ctx context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i, order := range s.Orders {
		if order.ID == orderID {
			s.Orders = append(s.Orders[:i], s.Orders[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}
