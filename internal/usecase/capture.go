package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tulamia/orderdesk/internal/adapter/paypal"
	domainErrors "github.com/tulamia/orderdesk/internal/domain/errors"
	"github.com/tulamia/orderdesk/internal/domain/model"
	"github.com/tulamia/orderdesk/internal/domain/repository"
	"github.com/tulamia/orderdesk/internal/gateway"
)

// CaptureDeclinedError is returned when the provider reports any capture
// status other than COMPLETED. No order record exists in that case.
type CaptureDeclinedError struct {
	Status string
}

func (e CaptureDeclinedError) Error() string {
	return fmt.Sprintf("payment capture not completed: provider status %q", e.Status)
}

// PostCaptureError marks the reconciliation case: funds were captured but
// the order could not be recorded. It must never be treated as an
// ordinary save failure.
type PostCaptureError struct {
	ProviderOrderID string
	Err             error
}

func (e PostCaptureError) Error() string {
	return fmt.Sprintf("payment %s captured but order not recorded: %v", e.ProviderOrderID, e.Err)
}

func (e PostCaptureError) Unwrap() error { return e.Err }

// CaptureRequest carries everything the capture commit needs: the
// provider's order id from the approved popup plus the checkout payload
// to persist once funds are confirmed.
type CaptureRequest struct {
	ProviderOrderID string
	Customer        model.Customer
	Cart            []model.OrderLine
	Totals          model.Totals
}

// CaptureCommit is the successful outcome: the assigned order id plus the
// provider's raw capture payload for the receipt.
type CaptureCommit struct {
	OrderID string
	Capture *model.CaptureResult
}

// CaptureUseCase runs the four-step capture commit: access token, provider
// capture, the COMPLETED gate, then the atomic order insert. A capture is
// never retried here; the caller must restart the approval flow.
type CaptureUseCase struct {
	provider paypal.Client
	orders   repository.OrderRepository
	gateway  *gateway.Gateway
	logger   *slog.Logger
}

// NewCaptureUseCase constructs CaptureUseCase. Both the provider client
// and the order repository may be nil when the deployment runs without
// PayPal credentials or a remote store.
func NewCaptureUseCase(provider paypal.Client, orders repository.OrderRepository, g *gateway.Gateway, logger *slog.Logger) *CaptureUseCase {
	return &CaptureUseCase{provider: provider, orders: orders, gateway: g, logger: logger}
}

// Available reports which capture preconditions fail. An empty slice
// means the PayPal path may be offered.
func (u *CaptureUseCase) Available() []string {
	var missing []string
	if u.provider == nil {
		missing = append(missing, "paypal credentials")
	}
	if u.orders == nil {
		missing = append(missing, "remote store")
	}
	return missing
}

// Capture performs the capture commit for an approved provider order.
func (u *CaptureUseCase) Capture(ctx context.Context, req CaptureRequest) (*CaptureCommit, error) {
	if u.provider == nil || u.orders == nil {
		return nil, domainErrors.ErrPayPalUnavailable
	}
	if strings.TrimSpace(req.ProviderOrderID) == "" || strings.TrimSpace(req.Customer.Name) == "" || len(req.Cart) == 0 {
		return nil, domainErrors.ErrCheckoutNotReady
	}

	token, err := u.provider.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("paypal access token: %w", err)
	}

	capture, err := u.provider.Capture(ctx, req.ProviderOrderID, token)
	if err != nil {
		return nil, fmt.Errorf("paypal capture: %w", err)
	}

	if capture.Status != model.CaptureStatusCompleted {
		u.logger.Warn("capture declined, no order recorded",
			slog.String("paypal_order_id", req.ProviderOrderID),
			slog.String("status", capture.Status),
		)
		return nil, CaptureDeclinedError{Status: capture.Status}
	}

	order := model.Order{
		CreatedAt: time.Now().UTC(),
		Customer:  req.Customer,
		Cart:      req.Cart,
		Payment: model.Payment{
			Provider:  model.ProviderPayPal,
			Status:    model.PaymentPaid,
			Reference: req.ProviderOrderID,
		},
		Totals: req.Totals,
	}

	id, err := u.orders.CreateOrder(ctx, gateway.NormalizeOrder(order))
	if err != nil {
		postErr := PostCaptureError{ProviderOrderID: req.ProviderOrderID, Err: err}
		u.logger.Error("MANUAL RECONCILIATION REQUIRED: funds captured but order not recorded",
			slog.String("paypal_order_id", req.ProviderOrderID),
			slog.String("customer", req.Customer.Name),
			slog.Float64("total", req.Totals.Total),
			slog.String("error", err.Error()),
		)
		return nil, postErr
	}

	u.gateway.Invalidate()

	u.logger.Info("paypal order captured",
		slog.String("order_id", id),
		slog.String("paypal_order_id", req.ProviderOrderID),
	)

	return &CaptureCommit{OrderID: id, Capture: capture}, nil
}
