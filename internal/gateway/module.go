package gateway

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/tulamia/orderdesk/internal/config"
	"github.com/tulamia/orderdesk/internal/domain/repository"
	"github.com/tulamia/orderdesk/internal/storage/localstore"
	"github.com/tulamia/orderdesk/internal/storage/snapshot"
)

// Module wires the order data gateway over its three tiers.
var Module = fx.Provide(newGateway)

type gatewayParams struct {
	fx.In

	Catalog  repository.CatalogRepository `optional:"true"`
	Orders   repository.OrderRepository   `optional:"true"`
	Snapshot *snapshot.Source
	Local    *localstore.Store
	Config   *config.Config
	Logger   *slog.Logger
}

func newGateway(p gatewayParams) *Gateway {
	return New(p.Catalog, p.Orders, p.Snapshot, p.Local, p.Config.OrdersLimit, p.Logger)
}
