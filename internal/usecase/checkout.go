package usecase

import (
	"context"
	"log/slog"
	"time"

	domainErrors "github.com/tulamia/orderdesk/internal/domain/errors"
	"github.com/tulamia/orderdesk/internal/domain/model"
	"github.com/tulamia/orderdesk/internal/gateway"
)

const (
	serviceFee  = 1.5
	deliveryFee = 3.0
)

// ComputeTotals derives checkout amounts from the subtotal and the chosen
// fulfillment mode. The service fee applies only to non-empty carts.
func ComputeTotals(subtotal float64, fulfillment model.Fulfillment) model.Totals {
	t := model.Totals{Subtotal: model.Round2(subtotal)}
	if subtotal > 0 {
		t.ServiceFee = serviceFee
	}
	if fulfillment == model.FulfillmentDelivery {
		t.DeliveryFee = deliveryFee
	}
	t.Total = model.Round2(t.Subtotal + t.ServiceFee + t.DeliveryFee)
	return t
}

// CheckoutUseCase turns a cart plus contact details into a persisted order.
type CheckoutUseCase struct {
	gateway *gateway.Gateway
	logger  *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(g *gateway.Gateway, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{gateway: g, logger: logger}
}

// Quote prices a cart against the live catalog without submitting it.
func (u *CheckoutUseCase) Quote(ctx context.Context, cart *model.Cart, fulfillment model.Fulfillment) ([]model.OrderLine, model.Totals, error) {
	catalog, err := u.gateway.FetchCatalog(ctx)
	if err != nil {
		return nil, model.Totals{}, err
	}
	lines := cart.Lines(catalog)
	return lines, ComputeTotals(cart.Subtotal(catalog), fulfillment), nil
}

// PlaceOrder validates the checkout gate, prices the cart against the live
// catalog and persists a pending order through the gateway ladder.
//
// PayPal checkouts do not pass through here: capture-confirmed
// orders are committed by CaptureUseCase with status paid.
func (u *CheckoutUseCase) PlaceOrder(ctx context.Context, cart *model.Cart, customer model.Customer, provider model.PaymentProvider) (*model.Order, error) {
	if provider == model.ProviderPayPal || !ValidProvider(provider) {
		return nil, domainErrors.ErrInvalidProvider
	}
	if !ValidFulfillment(customer.Fulfillment) {
		customer.Fulfillment = model.FulfillmentPickup
	}

	catalog, err := u.gateway.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	lines := cart.Lines(catalog)
	subtotal := cart.Subtotal(catalog)

	if !CanSubmit(subtotal, customer) {
		return nil, domainErrors.ErrCheckoutNotReady
	}

	order := model.Order{
		CreatedAt: time.Now().UTC(),
		Customer:  customer,
		Cart:      lines,
		Payment:   model.Payment{Provider: provider, Status: model.PaymentPending},
		Totals:    ComputeTotals(subtotal, customer.Fulfillment),
	}

	id, err := u.gateway.SaveOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = id

	u.logger.Info("order placed",
		slog.String("order_id", id),
		slog.String("provider", string(provider)),
		slog.Float64("total", order.Totals.Total),
	)

	return &order, nil
}
