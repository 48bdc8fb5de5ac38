package worker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/tulamia/orderdesk/internal/config"
	"github.com/tulamia/orderdesk/internal/gateway"
)

// Module wires the background view refresher and the mutation signal
// channel it listens on.
var Module = fx.Options(
	fx.Provide(newRefreshChannel),
	fx.Provide(newViewRefresher),
)

func newRefreshChannel() chan struct{} {
	return make(chan struct{}, 1)
}

type refresherParams struct {
	fx.In

	Gateway *gateway.Gateway
	Signals chan struct{}
	Config  *config.Config
	Logger  *slog.Logger
}

func newViewRefresher(p refresherParams) *ViewRefresher {
	return NewViewRefresher(p.Gateway, p.Signals, p.Config.RefreshInterval, p.Logger)
}
