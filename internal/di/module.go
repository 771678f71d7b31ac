package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/profilecard/internal/adapter/asset"
	"github.com/polkiloo/profilecard/internal/app"
	"github.com/polkiloo/profilecard/internal/config"
	"github.com/polkiloo/profilecard/internal/logger"
	"github.com/polkiloo/profilecard/internal/metrics"
	"github.com/polkiloo/profilecard/internal/pkg/auth"
	"github.com/polkiloo/profilecard/internal/server/http/handlers"
	"github.com/polkiloo/profilecard/internal/server/http/middleware"
	"github.com/polkiloo/profilecard/internal/server/http/router"
	"github.com/polkiloo/profilecard/internal/spool"
	"github.com/polkiloo/profilecard/internal/storage"
	"github.com/polkiloo/profilecard/internal/usecase"
	"github.com/polkiloo/profilecard/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		storage.Module,
		asset.Module,
		spool.Module,
		usecase.Module,
		fx.Provide(
			func(c *metrics.Collector) asset.UploadObserver { return c },
			func(c *metrics.Collector) middleware.RequestRecorder { return c },
			func(c *metrics.Collector) worker.SweepRecorder { return c },
			func(c *metrics.Collector) app.OutcomeRecorder { return c },
			func(u asset.Uploader) usecase.AssetStore { return u },
			func(s *spool.Spool) handlers.UploadSpool { return s },
			func(f *app.ProfileFacade) handlers.ProfileFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
