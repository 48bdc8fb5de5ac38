package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/tulamia/orderdesk/internal/adapter/paypal"
	"github.com/tulamia/orderdesk/internal/config"
	"github.com/tulamia/orderdesk/internal/domain/repository"
	"github.com/tulamia/orderdesk/internal/gateway"
	pkgAuth "github.com/tulamia/orderdesk/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewCheckoutUseCase,
	newCaptureUseCase,
	newAdminUseCase,
	newAuthUseCase,
)

type captureParams struct {
	fx.In

	Provider paypal.Client              `optional:"true"`
	Orders   repository.OrderRepository `optional:"true"`
	Gateway  *gateway.Gateway
	Logger   *slog.Logger
}

func newCaptureUseCase(p captureParams) *CaptureUseCase {
	return NewCaptureUseCase(p.Provider, p.Orders, p.Gateway, p.Logger)
}

type adminParams struct {
	fx.In

	Catalog repository.CatalogRepository `optional:"true"`
	Orders  repository.OrderRepository   `optional:"true"`
	Refresh chan struct{}
	Logger  *slog.Logger
}

func newAdminUseCase(p adminParams) *AdminUseCase {
	return NewAdminUseCase(p.Catalog, p.Orders, p.Refresh, p.Logger)
}

type authParams struct {
	fx.In

	Config   *config.Config
	Hasher   pkgAuth.PasswordHasher
	Strategy pkgAuth.Strategy
}

func newAuthUseCase(p authParams) (*AuthUseCase, error) {
	return NewAuthUseCase(p.Config.AdminLogin, p.Config.AdminPassword, p.Hasher, p.Strategy)
}
