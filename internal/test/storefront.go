package test

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/tulamia/orderdesk/internal/adapter/paypal"
	"github.com/tulamia/orderdesk/internal/app"
	"github.com/tulamia/orderdesk/internal/domain/model"
	"github.com/tulamia/orderdesk/internal/domain/repository"
	"github.com/tulamia/orderdesk/internal/gateway"
	pkgAuth "github.com/tulamia/orderdesk/internal/pkg/auth"
	"github.com/tulamia/orderdesk/internal/session"
	"github.com/tulamia/orderdesk/internal/usecase"
)

// DiscardLogger returns a logger suitable for quiet tests.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// SnapshotStub serves fixed snapshot data.
type SnapshotStub struct {
	CatalogItems []model.MenuItem
	OrderList    []model.Order
	CatalogErr   error
	OrdersErr    error
}

// Catalog returns the configured snapshot catalog.
func (s SnapshotStub) Catalog() ([]model.MenuItem, error) {
	return s.CatalogItems, s.CatalogErr
}

// Orders returns the configured snapshot orders.
func (s SnapshotStub) Orders() ([]model.Order, error) {
	return s.OrderList, s.OrdersErr
}

// LocalStoreStub keeps the local order slot in memory.
type LocalStoreStub struct {
	mu     sync.Mutex
	Orders []model.Order
	Err    error
	next   int
}

// List returns locally cached orders.
func (s *LocalStoreStub) List() ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Order, len(s.Orders))
	copy(out, s.Orders)
	return out, nil
}

// Append stores an order with a synthetic id and timestamp.
func (s *LocalStoreStub) Append(order model.Order) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return model.Order{}, s.Err
	}
	s.next++
	order.ID = fmt.Sprintf("local-%d", s.next)
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	s.Orders = append(s.Orders, order)
	return order, nil
}

// StorefrontOptions configures the assembled facade.
type StorefrontOptions struct {
	Catalog  *CatalogRepositoryStub
	Orders   *OrderRepositoryStub
	Snapshot SnapshotStub
	Local    *LocalStoreStub
	PayPal   paypal.Client
	Refresh  chan struct{}
}

// SampleCatalog returns a small menu for storefront tests.
func SampleCatalog() []model.MenuItem {
	return []model.MenuItem{
		{ID: "bruschetta", Name: "Bruschetta al Pomodoro", Price: 6.50, Emoji: "🍅", Active: true},
		{ID: "tagliatelle", Name: "Tagliatelle al Ragù", Price: 4.40, Emoji: "🍝", Active: true},
	}
}

// NewStorefrontFacade assembles a fully wired facade over in-memory tiers.
func NewStorefrontFacade(opts StorefrontOptions) *app.StorefrontFacade {
	logger := DiscardLogger()

	if opts.Local == nil {
		opts.Local = &LocalStoreStub{}
	}
	if opts.Refresh == nil {
		opts.Refresh = make(chan struct{}, 1)
	}

	var catalogRepo repository.CatalogRepository
	if opts.Catalog != nil {
		catalogRepo = opts.Catalog
	}
	var orderRepo repository.OrderRepository
	if opts.Orders != nil {
		orderRepo = opts.Orders
	}

	g := gateway.New(catalogRepo, orderRepo, opts.Snapshot, opts.Local, 25, logger)

	checkout := usecase.NewCheckoutUseCase(g, logger)
	capture := usecase.NewCaptureUseCase(opts.PayPal, orderRepo, g, logger)
	admin := usecase.NewAdminUseCase(catalogRepo, orderRepo, opts.Refresh, logger)
	auth, err := usecase.NewAuthUseCase("admin", "swordfish", pkgAuth.NewBcryptHasher(4), pkgAuth.NewJWTStrategy("test-secret", pkgAuth.Options{TTL: time.Hour}))
	if err != nil {
		panic(err)
	}

	return app.NewStorefrontFacade(g, session.NewManager(), checkout, capture, admin, auth)
}
