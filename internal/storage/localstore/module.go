package localstore

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/tulamia/orderdesk/internal/config"
)

// Module wires the local order slot.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) *Store {
	return New(p.Config.LocalStorePath, p.Logger)
}
