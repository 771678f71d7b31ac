package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/polkiloo/profilecard/internal/config"
	"github.com/polkiloo/profilecard/internal/metrics"
	"github.com/polkiloo/profilecard/internal/server/http/handlers"
	"github.com/polkiloo/profilecard/internal/server/http/middleware"
	"github.com/polkiloo/profilecard/internal/server/http/views"
)

// Params lists the router dependencies.
type Params struct {
	fx.In

	Facade   handlers.ProfileFacade
	Spool    handlers.UploadSpool
	Recorder middleware.RequestRecorder
	Gatherer prometheus.Gatherer
	Config   *config.Config
	Logger   *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.SetHTMLTemplate(views.Must())
	var maxDecompressed int64
	if p.Config != nil {
		if p.Config.MaxMultipartMemory > 0 {
			engine.MaxMultipartMemory = p.Config.MaxMultipartMemory
		}
		maxDecompressed = p.Config.MaxDecompressedBody
	}

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.RequestMetrics(p.Recorder))
	engine.Use(middleware.DecompressRequest(maxDecompressed))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	accountHandler := handlers.NewAccountHandler(p.Facade, p.Spool, p.Logger)
	healthHandler := handlers.NewHealthHandler(p.Facade, p.Logger)

	engine.GET("/", accountHandler.Index)
	engine.GET("/register", accountHandler.RegisterForm)
	engine.POST("/register", accountHandler.Register)
	engine.POST("/login", accountHandler.Login)

	engine.GET("/healthz", healthHandler.Check)
	engine.GET("/metrics", gin.WrapH(metrics.Handler(p.Gatherer)))

	return engine
}
