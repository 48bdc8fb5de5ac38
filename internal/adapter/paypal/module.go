package paypal

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/tulamia/orderdesk/internal/config"
)

// Module exposes the provider client to the fx graph. Without credentials
// the client is absent and the PayPal payment path stays disabled.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	if p.Config.PayPalClientID == "" || p.Config.PayPalSecret == "" {
		p.Logger.Info("paypal credentials not configured, capture path disabled")
		return nil, nil
	}
	return NewHTTPClient(p.Config.PayPalAPIBase, p.Config.PayPalClientID, p.Config.PayPalSecret, p.Logger)
}
