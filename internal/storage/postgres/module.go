package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/tulamia/orderdesk/internal/config"
	"github.com/tulamia/orderdesk/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters. The remote tier
// is optional: without a DSN the storage is absent and the gateway serves
// from the snapshot and local tiers only.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.CatalogRepository {
			if s == nil {
				return nil
			}
			return s.Catalog()
		},
		func(s *Storage) repository.OrderRepository {
			if s == nil {
				return nil
			}
			return s.Orders()
		},
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	if p.Config.DatabaseURI == "" {
		p.Logger.Info("remote store disabled, serving from snapshot and local cache")
		return nil, nil
	}
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	if storage == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
