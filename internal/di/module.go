package di

import (
	"github.com/tulamia/orderdesk/internal/adapter/paypal"
	"github.com/tulamia/orderdesk/internal/app"
	"github.com/tulamia/orderdesk/internal/config"
	"github.com/tulamia/orderdesk/internal/gateway"
	"github.com/tulamia/orderdesk/internal/logger"
	"github.com/tulamia/orderdesk/internal/pkg/auth"
	"github.com/tulamia/orderdesk/internal/server/http/handlers"
	"github.com/tulamia/orderdesk/internal/server/http/router"
	"github.com/tulamia/orderdesk/internal/session"
	"github.com/tulamia/orderdesk/internal/storage/localstore"
	"github.com/tulamia/orderdesk/internal/storage/postgres"
	"github.com/tulamia/orderdesk/internal/storage/snapshot"
	"github.com/tulamia/orderdesk/internal/usecase"
	"github.com/tulamia/orderdesk/internal/worker"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		snapshot.Module,
		localstore.Module,
		gateway.Module,
		paypal.Module,
		session.Module,
		usecase.Module,
		worker.Module,
		fx.Provide(func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
