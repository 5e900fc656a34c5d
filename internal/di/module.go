package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/streakmart/internal/adapter/catalog"
	"github.com/polkiloo/streakmart/internal/app"
	"github.com/polkiloo/streakmart/internal/config"
	"github.com/polkiloo/streakmart/internal/logger"
	"github.com/polkiloo/streakmart/internal/pkg/auth"
	"github.com/polkiloo/streakmart/internal/server/http/handlers"
	"github.com/polkiloo/streakmart/internal/server/http/router"
	"github.com/polkiloo/streakmart/internal/storage/postgres"
	"github.com/polkiloo/streakmart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		catalog.Module,
		usecase.Module,
		fx.Provide(func(client catalog.Client) app.CatalogProvider { return client }),
		fx.Provide(func(facade *app.StorefrontFacade) handlers.StorefrontFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
