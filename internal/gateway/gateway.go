// Package gateway implements the multi-tier order data gateway: remote
// relational store first, then the bundled static snapshot, then the local
// durable cache. Callers never branch on which tier served a request.
package gateway

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tulamia/orderdesk/internal/domain/model"
	"github.com/tulamia/orderdesk/internal/domain/repository"
)

// SnapshotSource is the static snapshot tier.
type SnapshotSource interface {
	Catalog() ([]model.MenuItem, error)
	Orders() ([]model.Order, error)
}

// LocalStore is the durable local cache tier.
type LocalStore interface {
	List() ([]model.Order, error)
	Append(order model.Order) (model.Order, error)
}

// Gateway resolves catalog and order reads through the tier ladder and
// routes non-PayPal order saves. Views are cached until invalidated by an
// admin mutation or a save.
type Gateway struct {
	remoteCatalog repository.CatalogRepository
	remoteOrders  repository.OrderRepository
	snapshot      SnapshotSource
	local         LocalStore
	ordersLimit   int
	logger        *slog.Logger

	mu          sync.RWMutex
	catalogView []model.MenuItem
	catalogWarm bool
	ordersView  []model.Order
	ordersWarm  bool
}

// New builds a gateway. The remote repositories may be nil, which disables
// the first tier entirely.
func New(remoteCatalog repository.CatalogRepository, remoteOrders repository.OrderRepository, snapshot SnapshotSource, local LocalStore, ordersLimit int, logger *slog.Logger) *Gateway {
	if ordersLimit <= 0 {
		ordersLimit = 25
	}
	return &Gateway{
		remoteCatalog: remoteCatalog,
		remoteOrders:  remoteOrders,
		snapshot:      snapshot,
		local:         local,
		ordersLimit:   ordersLimit,
		logger:        logger,
	}
}

// RemoteEnabled reports whether the first tier is configured.
func (g *Gateway) RemoteEnabled() bool {
	return g.remoteOrders != nil
}

// Invalidate drops the cached catalog and order views so the next read
// walks the ladder again.
func (g *Gateway) Invalidate() {
	g.mu.Lock()
	g.catalogWarm = false
	g.catalogView = nil
	g.ordersWarm = false
	g.ordersView = nil
	g.mu.Unlock()
}

// FetchCatalog returns the purchasable menu. Remote errors and empty
// remote results fall through to the snapshot; a snapshot failure is
// surfaced since there is no further tier for catalog reads.
func (g *Gateway) FetchCatalog(ctx context.Context) ([]model.MenuItem, error) {
	g.mu.RLock()
	if g.catalogWarm {
		view := g.catalogView
		g.mu.RUnlock()
		return view, nil
	}
	g.mu.RUnlock()

	items, err := g.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.catalogView = items
	g.catalogWarm = true
	g.mu.Unlock()
	return items, nil
}

func (g *Gateway) loadCatalog(ctx context.Context) ([]model.MenuItem, error) {
	if g.remoteCatalog != nil {
		items, err := g.remoteCatalog.ActiveItems(ctx)
		switch {
		case err != nil:
			g.logger.Warn("remote catalog fetch failed, falling back to snapshot", slog.String("error", err.Error()))
		case len(items) == 0:
			g.logger.Warn("remote catalog is empty, falling back to snapshot")
		default:
			return items, nil
		}
	}
	return g.snapshot.Catalog()
}

// WarmUp populates both cached views. Used by the background refresher
// after an invalidation so the next read is served warm.
func (g *Gateway) WarmUp(ctx context.Context) error {
	if _, err := g.FetchCatalog(ctx); err != nil {
		return err
	}
	_, err := g.FetchOrders(ctx)
	return err
}

// FetchOrders returns recent orders, newest first, normalized regardless
// of the tier that produced them. When the remote tier fails, the static
// snapshot is read best-effort and the local cache is appended after it,
// uncapped.
func (g *Gateway) FetchOrders(ctx context.Context) ([]model.Order, error) {
	g.mu.RLock()
	if g.ordersWarm {
		view := g.ordersView
		g.mu.RUnlock()
		return view, nil
	}
	g.mu.RUnlock()

	orders := g.loadOrders(ctx)

	g.mu.Lock()
	g.ordersView = orders
	g.ordersWarm = true
	g.mu.Unlock()
	return orders, nil
}

func (g *Gateway) loadOrders(ctx context.Context) []model.Order {
	if g.remoteOrders != nil {
		remote, err := g.remoteOrders.ListRecent(ctx, g.ordersLimit)
		if err == nil {
			normalized := make([]model.Order, 0, len(remote))
			for _, o := range remote {
				normalized = append(normalized, NormalizeOrder(o))
			}
			return normalized
		}
		g.logger.Warn("remote orders fetch failed, falling back to snapshot", slog.String("error", err.Error()))
	}

	var orders []model.Order
	static, err := g.snapshot.Orders()
	if err != nil {
		g.logger.Warn("static orders snapshot unavailable", slog.String("error", err.Error()))
	}
	for _, o := range static {
		orders = append(orders, NormalizeOrder(o))
	}

	stored, err := g.local.List()
	if err != nil {
		g.logger.Warn("local order cache unavailable", slog.String("error", err.Error()))
	}
	for _, o := range stored {
		orders = append(orders, NormalizeOrder(o))
	}
	return orders
}

// SaveOrder persists a non-PayPal order. The remote atomic create is
// attempted first; on any error, or a response without an assigned id,
// the order lands in the local slot instead. Exactly one tier produces
// the returned id.
func (g *Gateway) SaveOrder(ctx context.Context, order model.Order) (string, error) {
	if g.remoteOrders != nil {
		id, err := g.remoteOrders.CreateOrder(ctx, order)
		switch {
		case err != nil:
			g.logger.Warn("remote order save failed, falling back to local slot", slog.String("error", err.Error()))
		case id == "":
			g.logger.Warn("remote order save returned no id, falling back to local slot")
		default:
			g.invalidateOrders()
			return id, nil
		}
	}

	saved, err := g.local.Append(order)
	if err != nil {
		return "", err
	}
	g.invalidateOrders()
	return saved.ID, nil
}

func (g *Gateway) invalidateOrders() {
	g.mu.Lock()
	g.ordersWarm = false
	g.ordersView = nil
	g.mu.Unlock()
}

// NormalizeOrder maps a raw order row into the canonical shape: line
// totals recomputed from quantity and unit price, and absent fields
// replaced with the storefront defaults. It is idempotent.
func NormalizeOrder(o model.Order) model.Order {
	o.Cart = append([]model.OrderLine(nil), o.Cart...)
	for i := range o.Cart {
		line := &o.Cart[i]
		if line.Name == "" {
			line.Name = "Menu item"
		}
		line.LineTotal = model.Round2(line.UnitPrice * float64(line.Quantity))
	}
	if o.Customer.Name == "" {
		o.Customer.Name = "Guest"
	}
	if o.Customer.Fulfillment == "" {
		o.Customer.Fulfillment = model.FulfillmentPickup
	}
	if o.Payment.Provider == "" {
		o.Payment.Provider = model.ProviderCash
	}
	if o.Payment.Status == "" {
		o.Payment.Status = model.PaymentPending
	}
	return o
}
