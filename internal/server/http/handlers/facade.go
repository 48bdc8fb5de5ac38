package handlers

import (
	"context"

	"github.com/tulamia/orderdesk/internal/domain/model"
	"github.com/tulamia/orderdesk/internal/session"
	"github.com/tulamia/orderdesk/internal/usecase"
)

// StoreFacade covers the public storefront: views, cart and checkout.
type StoreFacade interface {
	Menu(ctx context.Context) ([]model.MenuItem, error)
	Orders(ctx context.Context) ([]model.Order, error)
	Session(id string) *session.Session
	AddItem(sess *session.Session, id string)
	UpdateItem(sess *session.Session, id string, qty int)
	RemoveItem(sess *session.Session, id string)
	ClearCart(sess *session.Session)
	CartView(ctx context.Context, sess *session.Session, fulfillment model.Fulfillment) ([]model.OrderLine, model.Totals, error)
	Checkout(ctx context.Context, sess *session.Session, customer model.Customer, provider model.PaymentProvider) (*model.Order, error)
}

// PaymentFacade covers the PayPal capture path.
type PaymentFacade interface {
	Session(id string) *session.Session
	CapturePayPal(ctx context.Context, sess *session.Session, providerOrderID string, customer model.Customer) (*usecase.CaptureCommit, error)
	PayPalPreconditions() []string
}

// AdminFacade covers admin authentication and mutations.
type AdminFacade interface {
	Authenticate(login, password string) (string, error)
	Verify(token string) usecase.Capability
	UpsertCatalogItem(ctx context.Context, c usecase.Capability, item model.MenuItem) (model.MenuItem, error)
	DeleteCatalogItem(ctx context.Context, c usecase.Capability, id string) error
	SetOrderPaymentStatus(ctx context.Context, c usecase.Capability, orderID string, status model.PaymentStatus) (*model.Order, error)
	DeleteOrder(ctx context.Context, c usecase.Capability, orderID string) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	StoreFacade
	PaymentFacade
	AdminFacade
}
