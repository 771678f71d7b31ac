package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/profilecard/internal/config"
	"github.com/polkiloo/profilecard/internal/domain/repository"
)

// Module wires the configured user store and its repository adapters.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(func(f repository.Factory) repository.UserRepository { return f.Users() }),
	fx.Invoke(registerLifecycle),
)

type factoryParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newFactory(p factoryParams) (repository.Factory, error) {
	return Open(p.Ctx, p.Config, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, factory repository.Factory) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return factory.Close(ctx)
		},
	})
}
