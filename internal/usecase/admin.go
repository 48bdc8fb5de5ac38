package usecase

import (
	"context"
	"log/slog"
	"strings"

	domainErrors "github.com/tulamia/orderdesk/internal/domain/errors"
	"github.com/tulamia/orderdesk/internal/domain/model"
	"github.com/tulamia/orderdesk/internal/domain/repository"
)

// Capability is the authorization attached to an admin call. Mutations
// check only the Admin flag, never the subject.
type Capability struct {
	Subject string
	Admin   bool
}

// AdminUseCase applies catalog and order mutations against the remote
// store. Every successful mutation emits a refresh signal so cached
// gateway views are rebuilt.
type AdminUseCase struct {
	catalog repository.CatalogRepository
	orders  repository.OrderRepository
	refresh chan<- struct{}
	logger  *slog.Logger
}

// NewAdminUseCase constructs AdminUseCase. Repositories may be nil when
// no remote store is configured; mutations then fail uniformly.
func NewAdminUseCase(catalog repository.CatalogRepository, orders repository.OrderRepository, refresh chan<- struct{}, logger *slog.Logger) *AdminUseCase {
	return &AdminUseCase{catalog: catalog, orders: orders, refresh: refresh, logger: logger}
}

// UpsertCatalogItem inserts or replaces a menu item keyed by id.
func (u *AdminUseCase) UpsertCatalogItem(ctx context.Context, c Capability, item model.MenuItem) (model.MenuItem, error) {
	if !c.Admin {
		return model.MenuItem{}, domainErrors.ErrUnauthorized
	}
	if u.catalog == nil {
		return model.MenuItem{}, domainErrors.ErrRemoteUnavailable
	}
	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" || strings.TrimSpace(item.Name) == "" || item.Price <= 0 {
		return model.MenuItem{}, domainErrors.ErrInvalidMenuItem
	}

	saved, err := u.catalog.UpsertItem(ctx, item)
	if err != nil {
		return model.MenuItem{}, err
	}
	u.signalRefresh("upsert_catalog_item", saved.ID)
	return saved, nil
}

// DeleteCatalogItem removes a menu item by id.
func (u *AdminUseCase) DeleteCatalogItem(ctx context.Context, c Capability, id string) error {
	if !c.Admin {
		return domainErrors.ErrUnauthorized
	}
	if u.catalog == nil {
		return domainErrors.ErrRemoteUnavailable
	}
	if strings.TrimSpace(id) == "" {
		return domainErrors.ErrInvalidMenuItem
	}

	if err := u.catalog.DeleteItem(ctx, id); err != nil {
		return err
	}
	u.signalRefresh("delete_catalog_item", id)
	return nil
}

// SetOrderPaymentStatus moves an order to any settlement status. No
// transition restrictions apply.
func (u *AdminUseCase) SetOrderPaymentStatus(ctx context.Context, c Capability, orderID string, status model.PaymentStatus) (*model.Order, error) {
	if !c.Admin {
		return nil, domainErrors.ErrUnauthorized
	}
	if u.orders == nil {
		return nil, domainErrors.ErrRemoteUnavailable
	}
	if !ValidPaymentStatus(status) {
		return nil, domainErrors.ErrInvalidStatus
	}

	order, err := u.orders.SetPaymentStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	u.signalRefresh("set_payment_status", orderID)
	return order, nil
}

// DeleteOrder removes an order and its line items.
func (u *AdminUseCase) DeleteOrder(ctx context.Context, c Capability, orderID string) error {
	if !c.Admin {
		return domainErrors.ErrUnauthorized
	}
	if u.orders == nil {
		return domainErrors.ErrRemoteUnavailable
	}

	if err := u.orders.DeleteOrder(ctx, orderID); err != nil {
		return err
	}
	u.signalRefresh("delete_order", orderID)
	return nil
}

// signalRefresh nudges the background refresher without blocking the
// mutation result on it.
func (u *AdminUseCase) signalRefresh(op, id string) {
	select {
	case u.refresh <- struct{}{}:
	default:
	}
	u.logger.Info("admin mutation applied", slog.String("op", op), slog.String("id", id))
}
