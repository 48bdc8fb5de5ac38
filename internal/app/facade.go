package app

import (
	"context"

	"github.com/tulamia/orderdesk/internal/domain/model"
	"github.com/tulamia/orderdesk/internal/gateway"
	"github.com/tulamia/orderdesk/internal/session"
	"github.com/tulamia/orderdesk/internal/usecase"
)

// StorefrontFacade bundles the order engine's surface for the HTTP layer:
// menu and order views, per-session carts, checkout, the PayPal capture
// commit and the admin mutations.
type StorefrontFacade struct {
	gateway  *gateway.Gateway
	sessions *session.Manager
	checkout *usecase.CheckoutUseCase
	capture  *usecase.CaptureUseCase
	admin    *usecase.AdminUseCase
	auth     *usecase.AuthUseCase
}

func NewStorefrontFacade(
	g *gateway.Gateway,
	sessions *session.Manager,
	checkout *usecase.CheckoutUseCase,
	capture *usecase.CaptureUseCase,
	admin *usecase.AdminUseCase,
	auth *usecase.AuthUseCase,
) *StorefrontFacade {
	return &StorefrontFacade{
		gateway:  g,
		sessions: sessions,
		checkout: checkout,
		capture:  capture,
		admin:    admin,
		auth:     auth,
	}
}

func (f *StorefrontFacade) Menu(ctx context.Context) ([]model.MenuItem, error) {
	return f.gateway.FetchCatalog(ctx)
}

func (f *StorefrontFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.gateway.FetchOrders(ctx)
}

func (f *StorefrontFacade) Session(id string) *session.Session {
	return f.sessions.GetOrCreate(id)
}

func (f *StorefrontFacade) AddItem(sess *session.Session, id string) {
	sess.Mutate(func(c *model.Cart) { c.Add(id) })
}

func (f *StorefrontFacade) UpdateItem(sess *session.Session, id string, qty int) {
	sess.Mutate(func(c *model.Cart) { c.Update(id, qty) })
}

func (f *StorefrontFacade) RemoveItem(sess *session.Session, id string) {
	sess.Mutate(func(c *model.Cart) { c.Remove(id) })
}

func (f *StorefrontFacade) ClearCart(sess *session.Session) {
	sess.ClearCart()
}

// CartView prices the session cart against the live catalog.
func (f *StorefrontFacade) CartView(ctx context.Context, sess *session.Session, fulfillment model.Fulfillment) ([]model.OrderLine, model.Totals, error) {
	return f.checkout.Quote(ctx, sess.Cart(), fulfillment)
}

// Checkout submits the session cart as a pending order. The session's
// submission latch guarantees at most one outstanding submission per
// cart; the cart is cleared only on success.
func (f *StorefrontFacade) Checkout(ctx context.Context, sess *session.Session, customer model.Customer, provider model.PaymentProvider) (*model.Order, error) {
	if err := sess.BeginSubmission(); err != nil {
		return nil, err
	}
	defer sess.EndSubmission()

	order, err := f.checkout.PlaceOrder(ctx, sess.Cart(), customer, provider)
	if err != nil {
		return nil, err
	}
	sess.ClearCart()
	return order, nil
}

// CapturePayPal runs the capture commit for the session cart. As with
// Checkout, the cart survives any failure and is cleared only once the
// order is recorded.
func (f *StorefrontFacade) CapturePayPal(ctx context.Context, sess *session.Session, providerOrderID string, customer model.Customer) (*usecase.CaptureCommit, error) {
	if err := sess.BeginSubmission(); err != nil {
		return nil, err
	}
	defer sess.EndSubmission()

	lines, totals, err := f.checkout.Quote(ctx, sess.Cart(), customer.Fulfillment)
	if err != nil {
		return nil, err
	}

	commit, err := f.capture.Capture(ctx, usecase.CaptureRequest{
		ProviderOrderID: providerOrderID,
		Customer:        customer,
		Cart:            lines,
		Totals:          totals,
	})
	if err != nil {
		return nil, err
	}
	sess.ClearCart()
	return commit, nil
}

// PayPalPreconditions lists the capture preconditions that currently
// fail. Empty means the PayPal path may be offered.
func (f *StorefrontFacade) PayPalPreconditions() []string {
	return f.capture.Available()
}

func (f *StorefrontFacade) Authenticate(login, password string) (string, error) {
	return f.auth.Authenticate(login, password)
}

func (f *StorefrontFacade) Verify(token string) usecase.Capability {
	return f.auth.Verify(token)
}

func (f *StorefrontFacade) UpsertCatalogItem(ctx context.Context, c usecase.Capability, item model.MenuItem) (model.MenuItem, error) {
	return f.admin.UpsertCatalogItem(ctx, c, item)
}

func (f *StorefrontFacade) DeleteCatalogItem(ctx context.Context, c usecase.Capability, id string) error {
	return f.admin.DeleteCatalogItem(ctx, c, id)
}

func (f *StorefrontFacade) SetOrderPaymentStatus(ctx context.Context, c usecase.Capability, orderID string, status model.PaymentStatus) (*model.Order, error) {
	return f.admin.SetOrderPaymentStatus(ctx, c, orderID, status)
}

func (f *StorefrontFacade) DeleteOrder(ctx context.Context, c usecase.Capability, orderID string) error {
	return f.admin.DeleteOrder(ctx, c, orderID)
}
