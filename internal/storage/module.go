package storage

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/authkeeper/internal/config"
	"github.com/polkiloo/authkeeper/internal/domain/repository"
	"github.com/polkiloo/authkeeper/internal/pkg/auth"
	"github.com/polkiloo/authkeeper/internal/storage/memory"
	"github.com/polkiloo/authkeeper/internal/storage/mongo"
	"github.com/polkiloo/authkeeper/internal/storage/postgres"
	"github.com/polkiloo/authkeeper/internal/storage/redis"
)

// Module wires the configured credential store and token denylist.
var Module = fx.Options(
	fx.Provide(newFactory, newDenylist),
	fx.Provide(func(f repository.Factory) repository.UserRepository { return f.Users() }),
)

type closeFunc func(context.Context) error

var (
	openMongo = func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Factory, closeFunc, error) {
		s, err := mongo.New(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}

	openPostgres = func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Factory, closeFunc, error) {
		s, err := postgres.New(ctx, cfg.DatabaseURI, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func(context.Context) error {
			s.Close()
			return nil
		}, nil
	}

	openRedis = func(ctx context.Context, cfg *config.Config) (auth.Denylist, closeFunc, error) {
		d, err := redis.New(ctx, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return d, func(context.Context) error { return d.Close() }, nil
	}
)

type params struct {
	fx.In

	Ctx       context.Context
	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

func newFactory(p params) (repository.Factory, error) {
	var (
		factory repository.Factory
		closer  closeFunc
		err     error
	)
	switch p.Config.StorageDriver {
	case config.StorageMongo:
		factory, closer, err = openMongo(p.Ctx, p.Config, p.Logger)
	case config.StoragePostgres:
		factory, closer, err = openPostgres(p.Ctx, p.Config, p.Logger)
	case config.StorageMemory:
		factory = memory.New()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", p.Config.StorageDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", p.Config.StorageDriver, err)
	}

	if closer != nil {
		p.Lifecycle.Append(fx.Hook{OnStop: closer})
	}
	p.Logger.Info("credential store selected", slog.String("driver", p.Config.StorageDriver))
	return factory, nil
}

func newDenylist(p params) (auth.Denylist, error) {
	if p.Config.RedisAddr == "" {
		p.Logger.Info("using in-memory token denylist")
		return memory.NewDenylist(), nil
	}

	denylist, closer, err := openRedis(p.Ctx, p.Config)
	if err != nil {
		return nil, fmt.Errorf("open redis denylist: %w", err)
	}
	p.Lifecycle.Append(fx.Hook{OnStop: closer})
	p.Logger.Info("using redis token denylist", slog.String("addr", p.Config.RedisAddr))
	return denylist, nil
}
