package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/authkeeper/internal/app"
	"github.com/polkiloo/authkeeper/internal/config"
	"github.com/polkiloo/authkeeper/internal/logger"
	"github.com/polkiloo/authkeeper/internal/metrics"
	"github.com/polkiloo/authkeeper/internal/pkg/auth"
	"github.com/polkiloo/authkeeper/internal/server/http/handlers"
	"github.com/polkiloo/authkeeper/internal/server/http/router"
	"github.com/polkiloo/authkeeper/internal/storage"
	"github.com/polkiloo/authkeeper/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		storage.Module,
		usecase.Module,
		fx.Provide(func(f *app.AuthFacade) handlers.AuthFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
